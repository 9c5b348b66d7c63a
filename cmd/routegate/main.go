package main

import (
	"flag"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/routegate/routegate"
)

func main() {
	var (
		address               string
		routesFile            string
		routesURL             string
		pollTimeout           time.Duration
		defaultFilters        string
		failOnDefinitionError bool
		metricsListener       string
		applicationLogPrefix  string
	)

	flag.StringVar(&address, "address", ":9090", "address to listen on")
	flag.StringVar(&routesFile, "routes-file", "", "path of a YAML route definitions file")
	flag.StringVar(&routesURL, "routes-url", "", "address of a remote JSON route definitions endpoint")
	flag.DurationVar(&pollTimeout, "poll-timeout", 0, "refresh interval of the route table")
	flag.StringVar(&defaultFilters, "default-filters", "", "semicolon separated shorthand filter definitions applied to every route")
	flag.BoolVar(&failOnDefinitionError, "fail-on-definition-error", false, "abort route resolution on any invalid route definition")
	flag.StringVar(&metricsListener, "metrics-listener", "", "address of the prometheus metrics endpoint, disabled when empty")
	flag.StringVar(&applicationLogPrefix, "application-log-prefix", "[routegate] ", "prefix of the application log entries")
	flag.Parse()

	var defaults []string
	for _, d := range strings.Split(defaultFilters, ";") {
		if d = strings.TrimSpace(d); d != "" {
			defaults = append(defaults, d)
		}
	}

	err := routegate.Run(routegate.Options{
		Address:               address,
		RoutesFile:            routesFile,
		RoutesURL:             routesURL,
		PollTimeout:           pollTimeout,
		DefaultFilters:        defaults,
		FailOnDefinitionError: failOnDefinitionError,
		MetricsListener:       metricsListener,
		ApplicationLogPrefix:  applicationLogPrefix,
	})
	if err != nil {
		log.Fatal(err)
	}
}
