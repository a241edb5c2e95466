package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"
)

// NetAddress holds a host and port. It implements flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the server flags from args.
//
// Flags:
//
//	-a                server address in format [host]:[port]
//	-d                database DSN
//	-database         MongoDB database name
//	-collection       MongoDB collection name
//	-c/-config        JSON bootstrap file path
//	-defaults         YAML/JSON default options overlay
//	-token-sign-key   admin token signing key
//	-token-issuer     admin token issuer
//	-token-duration   admin token lifetime (e.g. "1h")
//	-request-timeout  request timeout (e.g. "30s")
//	-reload-interval  persisted record reload interval, 0 disables
//	-log-level        minimum log level
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-conf-keeper", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var databaseDSN, database, collection string
	var jsonConfigPath, defaultsPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout, reloadInterval time.Duration
	var logLevel string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&database, "database", "", "MongoDB database name")
	fs.StringVar(&collection, "collection", "", "MongoDB collection name")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&defaultsPath, "defaults", "", "Default options overlay file")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Admin token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Admin token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Admin token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&reloadInterval, "reload-interval", 0, "Reload interval (e.g., 1m), 0 disables")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			LogLevel:      logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN:        databaseDSN,
				Database:   database,
				Collection: collection,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers:      Workers{ReloadInterval: reloadInterval},
		Defaults:     Defaults{FilePath: defaultsPath},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns host:port, or "" when neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost", empty or an IP.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
