package cms

// EnrollmentCounts holds the per-grade, per-gender headcounts for one
// enrollment record: eighteen grade levels (creche, KG 1-2, nursery 1-3,
// primary 1-6, JSS 1-3, SSS 1-3) split by gender.
type EnrollmentCounts struct {
	CrecheBoys    int `json:"creche_boys"`
	CrecheGirls   int `json:"creche_girls"`
	KG1Boys       int `json:"kg1_boys"`
	KG1Girls      int `json:"kg1_girls"`
	KG2Boys       int `json:"kg2_boys"`
	KG2Girls      int `json:"kg2_girls"`
	Nursery1Boys  int `json:"nursery1_boys"`
	Nursery1Girls int `json:"nursery1_girls"`
	Nursery2Boys  int `json:"nursery2_boys"`
	Nursery2Girls int `json:"nursery2_girls"`
	Nursery3Boys  int `json:"nursery3_boys"`
	Nursery3Girls int `json:"nursery3_girls"`
	Primary1Boys  int `json:"primary1_boys"`
	Primary1Girls int `json:"primary1_girls"`
	Primary2Boys  int `json:"primary2_boys"`
	Primary2Girls int `json:"primary2_girls"`
	Primary3Boys  int `json:"primary3_boys"`
	Primary3Girls int `json:"primary3_girls"`
	Primary4Boys  int `json:"primary4_boys"`
	Primary4Girls int `json:"primary4_girls"`
	Primary5Boys  int `json:"primary5_boys"`
	Primary5Girls int `json:"primary5_girls"`
	Primary6Boys  int `json:"primary6_boys"`
	Primary6Girls int `json:"primary6_girls"`
	JSS1Boys      int `json:"jss1_boys"`
	JSS1Girls     int `json:"jss1_girls"`
	JSS2Boys      int `json:"jss2_boys"`
	JSS2Girls     int `json:"jss2_girls"`
	JSS3Boys      int `json:"jss3_boys"`
	JSS3Girls     int `json:"jss3_girls"`
	SSS1Boys      int `json:"sss1_boys"`
	SSS1Girls     int `json:"sss1_girls"`
	SSS2Boys      int `json:"sss2_boys"`
	SSS2Girls     int `json:"sss2_girls"`
	SSS3Boys      int `json:"sss3_boys"`
	SSS3Girls     int `json:"sss3_girls"`
}

// buckets returns every counter in declaration order.
func (c EnrollmentCounts) buckets() []int {
	return []int{
		c.CrecheBoys, c.CrecheGirls,
		c.KG1Boys, c.KG1Girls,
		c.KG2Boys, c.KG2Girls,
		c.Nursery1Boys, c.Nursery1Girls,
		c.Nursery2Boys, c.Nursery2Girls,
		c.Nursery3Boys, c.Nursery3Girls,
		c.Primary1Boys, c.Primary1Girls,
		c.Primary2Boys, c.Primary2Girls,
		c.Primary3Boys, c.Primary3Girls,
		c.Primary4Boys, c.Primary4Girls,
		c.Primary5Boys, c.Primary5Girls,
		c.Primary6Boys, c.Primary6Girls,
		c.JSS1Boys, c.JSS1Girls,
		c.JSS2Boys, c.JSS2Girls,
		c.JSS3Boys, c.JSS3Girls,
		c.SSS1Boys, c.SSS1Girls,
		c.SSS2Boys, c.SSS2Girls,
		c.SSS3Boys, c.SSS3Girls,
	}
}

// Total returns the sum of all grade/gender counters. It is a derived view,
// computed on every call and never stored, so it can't go stale when
// individual counters change.
func (c EnrollmentCounts) Total() int {
	total := 0
	for _, n := range c.buckets() {
		total += n
	}
	return total
}

// validate rejects negative counters.
func (c EnrollmentCounts) validate() error {
	for _, n := range c.buckets() {
		if n < 0 {
			return &ValidationError{Field: "counts", Reason: "counters must not be negative"}
		}
	}
	return nil
}

// TotalEnrollment returns the record's derived total headcount. The legacy
// scalar counter is intentionally excluded.
func (r *EnrollmentRecord) TotalEnrollment() int {
	return r.Counts.Total()
}
