package models

// RateLimitOptions describes a single rate-limit bucket.
type RateLimitOptions struct {
	Bot    *int  `json:"bot,omitempty"`
	Count  int   `json:"count"`
	Window int   `json:"window"`
	OnlyIP *bool `json:"onyIp,omitempty"`
}

// Region is an available voice region.
type Region struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	VIP        bool   `json:"vip"`
	Custom     bool   `json:"custom"`
	Deprecated bool   `json:"deprecated"`
	Optimal    bool   `json:"optimal"`
}

// KafkaBroker is a single Kafka bootstrap address.
type KafkaBroker struct {
	IP   string `json:"ip"`
	Port int    `json:"port"`
}

// EndpointOptions holds public and internal endpoints of a service.
type EndpointOptions struct {
	EndpointClient *string `json:"endpointClient"`
	Endpoint       *string `json:"endpoint"`
}

// GeneralOptions holds instance-wide identity.
type GeneralOptions struct {
	InstanceID string `json:"instance_id"`
}

// PermissionsOptions holds feature toggles for regular users.
type PermissionsOptions struct {
	User struct {
		CreateGuilds bool `json:"createGuilds"`
	} `json:"user"`
}

// UserLimits caps per-user resources.
type UserLimits struct {
	MaxGuilds   int `json:"maxGuilds"`
	MaxUsername int `json:"maxUsername"`
	MaxFriends  int `json:"maxFriends"`
}

// GuildLimits caps per-guild resources.
type GuildLimits struct {
	MaxRoles              int `json:"maxRoles"`
	MaxMembers            int `json:"maxMembers"`
	MaxChannels           int `json:"maxChannels"`
	MaxChannelsInCategory int `json:"maxChannelsInCategory"`
	HideOfflineMember     int `json:"hideOfflineMember"`
}

// MessageLimits caps message sizes and bulk operations.
type MessageLimits struct {
	MaxCharacters     int `json:"maxCharacters"`
	MaxTTSCharacters  int `json:"maxTTSCharacters"`
	MaxReactions      int `json:"maxReactions"`
	MaxAttachmentSize int `json:"maxAttachmentSize"`
	MaxBulkDelete     int `json:"maxBulkDelete"`
}

// ChannelLimits caps per-channel resources.
type ChannelLimits struct {
	MaxPins  int `json:"maxPins"`
	MaxTopic int `json:"maxTopic"`
}

// RouteRateLimits holds per-route rate limits.
type RouteRateLimits struct {
	Guild   RateLimitOptions `json:"guild"`
	Webhook RateLimitOptions `json:"webhook"`
	Channel RateLimitOptions `json:"channel"`
	Auth    struct {
		Login    RateLimitOptions `json:"login"`
		Register RateLimitOptions `json:"register"`
	} `json:"auth"`
}

// RateLimits groups every rate-limit bucket.
type RateLimits struct {
	IP     RateLimitOptions `json:"ip"`
	Global RateLimitOptions `json:"global"`
	Error  RateLimitOptions `json:"error"`
	Routes RouteRateLimits  `json:"routes"`
}

// LimitsOptions groups all resource limits.
type LimitsOptions struct {
	User    UserLimits    `json:"user"`
	Guild   GuildLimits   `json:"guild"`
	Message MessageLimits `json:"message"`
	Channel ChannelLimits `json:"channel"`
	Rate    RateLimits    `json:"rate"`
}

// CaptchaOptions configures the captcha provider.
type CaptchaOptions struct {
	Enabled bool    `json:"enabled"`
	Service *string `json:"service"` // "recaptcha" | "hcaptcha" | nil
	Sitekey *string `json:"sitekey"`
	Secret  *string `json:"secret"`
}

// SecurityOptions holds secrets and proxy settings.
type SecurityOptions struct {
	RequestSignature string         `json:"requestSignature"`
	JWTSecret        string         `json:"jwtSecret"`
	ForwardedFor     *string        `json:"forwadedFor"`
	Captcha          CaptchaOptions `json:"captcha"`
	// IPDataAPIKey has no default and is supplied per deployment.
	IPDataAPIKey     *string        `json:"ipdataApiKey"`
}

// LoginOptions configures the login flow.
type LoginOptions struct {
	RequireCaptcha bool `json:"requireCaptcha"`
}

// RegisterOptions configures the registration flow.
type RegisterOptions struct {
	Email struct {
		Necessary bool     `json:"necessary"`
		Allowlist bool     `json:"allowlist"`
		Blocklist bool     `json:"blocklist"`
		Domains   []string `json:"domains"`
	} `json:"email"`
	DateOfBirth struct {
		Necessary bool `json:"necessary"`
		Minimum   int  `json:"minimum"` // years
	} `json:"dateOfBirth"`
	RequireCaptcha        bool `json:"requireCaptcha"`
	RequireInvite         bool `json:"requireInvite"`
	AllowNewRegistration  bool `json:"allowNewRegistration"`
	AllowMultipleAccounts bool `json:"allowMultipleAccounts"`
	BlockProxies          bool `json:"blockProxies"`
	Password              struct {
		MinLength    int `json:"minLength"`
		MinNumbers   int `json:"minNumbers"`
		MinUpperCase int `json:"minUpperCase"`
		MinSymbols   int `json:"minSymbols"`
	} `json:"password"`
}

// RegionsOptions lists voice regions.
type RegionsOptions struct {
	Default   string   `json:"default"`
	Available []Region `json:"available"`
}

// RabbitMQOptions configures the RabbitMQ connection.
type RabbitMQOptions struct {
	Host *string `json:"host"`
}

// KafkaOptions configures the Kafka connection.
type KafkaOptions struct {
	Brokers []KafkaBroker `json:"brokers"`
}

// Options is the typed view of the configuration document. Its JSON shape is
// the persisted shape.
type Options struct {
	Gateway     EndpointOptions    `json:"gateway"`
	CDN         EndpointOptions    `json:"cdn"`
	General     GeneralOptions     `json:"general"`
	Permissions PermissionsOptions `json:"permissions"`
	Limits      LimitsOptions      `json:"limits"`
	Security    SecurityOptions    `json:"security"`
	Login       LoginOptions       `json:"login"`
	Register    RegisterOptions    `json:"register"`
	Regions     RegionsOptions     `json:"regions"`
	RabbitMQ    RabbitMQOptions    `json:"rabbitmq"`
	Kafka       KafkaOptions       `json:"kafka"`
}

// DefaultOptions returns the complete default option tree. Generated values
// (instance id and secrets) are passed in so the result stays deterministic.
func DefaultOptions(instanceID, requestSignature, jwtSecret string) Options {
	var o Options

	o.General.InstanceID = instanceID
	o.Permissions.User.CreateGuilds = true

	o.Limits.User = UserLimits{MaxGuilds: 100, MaxUsername: 32, MaxFriends: 1000}
	o.Limits.Guild = GuildLimits{
		MaxRoles:              250,
		MaxMembers:            250000,
		MaxChannels:           500,
		MaxChannelsInCategory: 50,
		HideOfflineMember:     1000,
	}
	o.Limits.Message = MessageLimits{
		MaxCharacters:     2000,
		MaxTTSCharacters:  200,
		MaxReactions:      20,
		MaxAttachmentSize: 8388608,
		MaxBulkDelete:     100,
	}
	o.Limits.Channel = ChannelLimits{MaxPins: 50, MaxTopic: 1024}

	globalBot := 250
	o.Limits.Rate.IP = RateLimitOptions{Count: 500, Window: 5}
	o.Limits.Rate.Global = RateLimitOptions{Count: 20, Window: 5, Bot: &globalBot}
	o.Limits.Rate.Error = RateLimitOptions{Count: 10, Window: 5}
	o.Limits.Rate.Routes.Guild = RateLimitOptions{Count: 5, Window: 5}
	o.Limits.Rate.Routes.Webhook = RateLimitOptions{Count: 5, Window: 5}
	o.Limits.Rate.Routes.Channel = RateLimitOptions{Count: 5, Window: 5}
	o.Limits.Rate.Routes.Auth.Login = RateLimitOptions{Count: 5, Window: 60}
	o.Limits.Rate.Routes.Auth.Register = RateLimitOptions{Count: 2, Window: 60 * 60 * 12}

	o.Security.RequestSignature = requestSignature
	o.Security.JWTSecret = jwtSecret

	o.Register.Email.Necessary = true
	o.Register.Email.Blocklist = true
	o.Register.Email.Domains = []string{}
	o.Register.DateOfBirth.Necessary = true
	o.Register.DateOfBirth.Minimum = 13
	o.Register.RequireCaptcha = true
	o.Register.AllowNewRegistration = true
	o.Register.AllowMultipleAccounts = true
	o.Register.BlockProxies = true
	o.Register.Password.MinLength = 8
	o.Register.Password.MinNumbers = 2
	o.Register.Password.MinUpperCase = 2

	o.Regions.Default = "fosscord"
	o.Regions.Available = []Region{{ID: "fosscord", Name: "Fosscord"}}

	return o
}
