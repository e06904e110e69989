package config

import "fmt"

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the runtime environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the database connection
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType == "" {
			return fmt.Errorf("database type cannot be empty")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithMemoryMedia configures in-memory media hosting.
func WithMemoryMedia() Option {
	return func(c *ServerConfig) error {
		c.MediaType = "memory"
		return nil
	}
}

// WithS3Media configures S3-compatible media hosting.
func WithS3Media(bucket, region string) Option {
	return func(c *ServerConfig) error {
		if bucket == "" {
			return fmt.Errorf("s3 bucket cannot be empty")
		}
		c.MediaType = "s3"
		c.Media.Bucket = bucket
		c.Media.Region = region
		return nil
	}
}

// WithS3Credentials sets explicit S3 credentials.
func WithS3Credentials(accessKeyID, secretAccessKey string) Option {
	return func(c *ServerConfig) error {
		c.Media.AccessKeyID = accessKeyID
		c.Media.SecretAccessKey = secretAccessKey
		return nil
	}
}

// WithS3Endpoint sets a custom S3 endpoint (MinIO, localstack).
func WithS3Endpoint(endpoint string, usePathStyle bool) Option {
	return func(c *ServerConfig) error {
		c.Media.Endpoint = endpoint
		c.Media.UsePathStyle = usePathStyle
		return nil
	}
}

// WithMediaPublicBaseURL sets the public base URL for uploaded media.
func WithMediaPublicBaseURL(baseURL string) Option {
	return func(c *ServerConfig) error {
		c.Media.PublicBaseURL = baseURL
		return nil
	}
}

// WithMemoryMailer configures the in-memory mail recorder.
func WithMemoryMailer() Option {
	return func(c *ServerConfig) error {
		c.MailerType = "memory"
		return nil
	}
}

// WithSMTP configures the SMTP relay.
func WithSMTP(host string, port int, username, password, from string) Option {
	return func(c *ServerConfig) error {
		if host == "" {
			return fmt.Errorf("smtp host cannot be empty")
		}
		c.MailerType = "smtp"
		c.SMTP.Host = host
		c.SMTP.Port = port
		c.SMTP.Username = username
		c.SMTP.Password = password
		c.SMTP.From = from
		return nil
	}
}

// WithListLimit caps the page size for list operations
func WithListLimit(limit int) Option {
	return func(c *ServerConfig) error {
		if limit <= 0 {
			return fmt.Errorf("list limit must be positive")
		}
		c.ListLimit = limit
		return nil
	}
}

// WithEventLogging enables or disables domain event logging
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}
