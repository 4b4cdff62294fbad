package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	// MediaBaseURL prefixes legacy local media filenames when resolving
	// catalog records into absolute URLs.
	MediaBaseURL string `env:"MEDIA_BASE_URL"`

	Stripe  Stripe  `envPrefix:"STRIPE_"`
	Storage Storage `envPrefix:"S3_"`
	SMTP    SMTP    `envPrefix:"SMTP_"`
	Auth    Auth    `envPrefix:"AUTH_"`
}

type Stripe struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey  string `env:"SECRET_KEY"`
}

type Storage struct {
	Endpoint  string `env:"ENDPOINT"`
	Region    string `env:"REGION" envDefault:"us-east-1"`
	Bucket    string `env:"BUCKET"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	// PublicBaseURL is the prefix stored objects are served from,
	// e.g. a CDN or the bucket website endpoint.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

type SMTP struct {
	Host       string `env:"HOST"`
	Port       int    `env:"PORT" envDefault:"587"`
	Username   string `env:"USERNAME"`
	Password   string `env:"PASSWORD"`
	From       string `env:"FROM"`
	AdminEmail string `env:"ADMIN_EMAIL"`
}

type Auth struct {
	JWTSecret     string `env:"JWT_SECRET"`
	TokenTTLDays  int    `env:"TOKEN_TTL_DAYS" envDefault:"7"`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"false"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
