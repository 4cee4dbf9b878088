// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package lassie provides a simple client for the Congress LoRaWAN
// network-management REST API.
//
// The library covers CRUD operations on applications, gateways and devices
// and read access to device telemetry. It handles configuration loading,
// JSON mapping, error handling with automatic retry logic, and is safe for
// concurrent use.
//
// # Quick Start
//
// Create a client and list the applications of the account:
//
//	client, err := lassie.NewClient(
//	    lassie.Token("my-api-token"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	apps, err := client.ListApplications(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, app := range apps {
//	    fmt.Println(app.EUI, app.Tags["name"])
//	}
//
// # Configuration
//
// When no endpoint or token is given explicitly, NewClient reads them with
// LoadConfig. The environment variables LASSIE_ENDPOINT and LASSIE_TOKEN take
// precedence over the file $HOME/lassie.cfg, which holds key=value lines:
//
//	endpoint=https://api.lora.telenor.io
//	token=0123456789abcdef
//
// # Raw Requests
//
// Get, Post, Put and Delete expose the underlying REST calls. Responses can be
// queried with gjson paths and request payloads built with the Body builder:
//
//	body := lassie.Body{}.
//	    Set("tags.name", "weather station")
//	value, err := body.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := client.Put(ctx, "/applications/"+eui, value)
//	name := res.GetValue("tags.name").String()
//
// # Error Handling
//
// Failed requests return a *LassieError carrying the HTTP status code and the
// message returned by the server. Transient failures (429, 502, 503, 504 and
// transport errors) are retried with exponential backoff:
//
//	client, err := lassie.NewClient(
//	    lassie.MaxRetries(5),
//	    lassie.BackoffMinDelay(1*time.Second),
//	    lassie.BackoffMaxDelay(60*time.Second),
//	)
//
//	_, err = client.GetApplication(ctx, "00-00-00-00-00-00-00-01")
//	if lassie.IsNotFound(err) {
//	    // no such application
//	}
//
// # References
//
//   - gjson: https://github.com/tidwall/gjson
//   - sjson: https://github.com/tidwall/sjson
//   - resty: https://github.com/go-resty/resty
package lassie
