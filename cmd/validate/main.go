// Package main provides a CLI tool for validating ledger API endpoints.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

type endpoint struct {
	path        string
	method      string
	body        string
	contentType string
	contains    []string
}

const sampleBills = `{"bills":[
	{"name":"Rent","amount":"1200","due_day":1,"status":"unpaid","category":"Housing"},
	{"name":"Netflix","amount":15.49,"due_day":12,"status":"paid"},
	{"amount":"n/a","category":"misc"}
]}`

var endpoints = []endpoint{
	{path: "/health", method: "GET", contentType: "application/json", contains: []string{`"status":"ok"`}},
	{path: "/version", method: "GET", contentType: "application/json", contains: []string{`"name"`, `"version"`}},
	{path: "/bills/normalize", method: "POST", body: sampleBills, contentType: "application/json", contains: []string{`"normalized"`, `"warnings"`}},
	{path: "/bills/analyze", method: "POST", body: sampleBills, contentType: "application/json", contains: []string{`"summary"`, `"overdue_count"`}},
	{path: "/ledger/summarize", method: "POST", body: sampleBills, contentType: "application/json", contains: []string{`"period":"monthly"`, `"projected_cash_flow"`}},
}

type result struct {
	endpoint endpoint
	status   int
	duration time.Duration
	err      error
	body     string
}

func main() {
	url := flag.String("url", "http://localhost:8080", "Base URL of the server to validate")
	apiKey := flag.String("key", "", "Shared secret sent as X-API-Key")
	verbose := flag.Bool("v", false, "Verbose output")
	timeout := flag.Int("timeout", 10, "Request timeout in seconds")
	flag.Parse()

	client := &http.Client{
		Timeout: time.Duration(*timeout) * time.Second,
	}

	fmt.Printf("Validating server at %s\n", *url)
	fmt.Printf("Testing %d endpoints...\n\n", len(endpoints))

	var passed, failed int

	for _, ep := range endpoints {
		r := validateEndpoint(client, *url, *apiKey, ep, *verbose)

		switch {
		case r.err != nil:
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Error: %v\n", r.err)
		case r.status != http.StatusOK:
			failed++
			fmt.Printf("FAIL %s %s\n", ep.method, ep.path)
			fmt.Printf("     Status: %d\n", r.status)
		default:
			passed++
			fmt.Printf("PASS %s %s (%v)\n", ep.method, ep.path, r.duration.Round(time.Millisecond))
		}
	}

	fmt.Printf("\n%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func validateEndpoint(client *http.Client, baseURL, apiKey string, ep endpoint, verbose bool) result {
	var req *http.Request
	var err error

	if ep.method == http.MethodPost {
		req, err = http.NewRequest(ep.method, baseURL+ep.path, strings.NewReader(ep.body))
		if req != nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequest(ep.method, baseURL+ep.path, nil)
	}
	if err != nil {
		return result{endpoint: ep, err: err}
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return result{endpoint: ep, err: err, duration: duration}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result{endpoint: ep, err: err, status: resp.StatusCode, duration: duration}
	}

	r := result{endpoint: ep, status: resp.StatusCode, duration: duration, body: string(body)}

	if ct := resp.Header.Get("Content-Type"); ep.contentType != "" && !strings.Contains(ct, ep.contentType) {
		r.err = fmt.Errorf("expected content type %q, got %q", ep.contentType, ct)
		return r
	}

	for _, want := range ep.contains {
		if !strings.Contains(r.body, want) {
			r.err = fmt.Errorf("body missing %q", want)
			return r
		}
	}

	if verbose {
		fmt.Printf("     %s\n", truncate(r.body, 200))
	}

	return r
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
