package main

import (
	"net/http"
	"os"
	"time"
)

// Container healthcheck: probe the version endpoint and exit nonzero when
// the API is unreachable or erroring.
func main() {
	url := os.Getenv("ARENA_HEALTHCHECK_URL")
	if url == "" {
		url = "http://127.0.0.1:8080/api/version"
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		os.Exit(1)
	}
	os.Exit(0)
}
