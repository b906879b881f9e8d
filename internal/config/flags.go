// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

func commandLineArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("api-server", flag.ContinueOnError)
}

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a listen address in format [host]:[port]
//	-p listen port (overrides the port part of -a)
//	-openapi OpenAPI document path or URL
//	-validate-responses validate responses against the document
//	-log-level minimum log level
//	-c/-config json file path with configs
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var address NetAddress
	var port int
	var specPath string
	var validateResponses bool
	var logLevel string
	var jsonConfigPath string

	fs.Var(&address, "a", "Net address host:port")
	fs.IntVar(&port, "p", 0, "Listen port")
	fs.StringVar(&specPath, "openapi", "", "OpenAPI document path or URL")
	fs.BoolVar(&validateResponses, "validate-responses", false, "Validate responses against the OpenAPI document")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Join(ErrInvalidFlags, err)
	}

	if port == 0 {
		port = address.Port
	}

	return &StructuredConfig{
		Server: Server{
			Host: address.Host,
			Port: port,
		},
		OpenAPI: OpenAPI{
			SpecPath:          specPath,
			ValidateResponses: validateResponses,
		},
		Log: Log{
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(strings.TrimSpace(s))
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
