package cms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nappsng/cms/pkg/cms"
)

func TestEnrollmentCountsTotal(t *testing.T) {
	tests := []struct {
		name     string
		counts   cms.EnrollmentCounts
		expected int
	}{
		{
			name:     "zero counts sum to zero",
			counts:   cms.EnrollmentCounts{},
			expected: 0,
		},
		{
			name:     "single counter",
			counts:   cms.EnrollmentCounts{Primary3Girls: 5},
			expected: 5,
		},
		{
			name: "counters across sections",
			counts: cms.EnrollmentCounts{
				CrecheBoys:   3,
				KG2Girls:     7,
				Nursery1Boys: 2,
				Primary6Boys: 14,
				JSS3Girls:    11,
				SSS1Boys:     9,
				SSS3Girls:    6,
			},
			expected: 52,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.counts.Total())
		})
	}
}

func TestTotalEnrollmentExcludesLegacyTotal(t *testing.T) {
	record := &cms.EnrollmentRecord{
		Counts: cms.EnrollmentCounts{
			Primary1Boys:  10,
			Primary1Girls: 12,
		},
		LegacyTotal: 250,
	}

	assert.Equal(t, 22, record.TotalEnrollment())
}
