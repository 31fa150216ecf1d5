package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	raw := ""
	if len(os.Args) > 1 {
		raw = os.Args[1]
	} else {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("Enter a site URL to check (e.g., https://example.com): ")
		line, _ := reader.ReadString('\n')
		raw = strings.TrimSpace(line)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		fmt.Println("Invalid URL.")
		return
	}

	body, _ := json.Marshal(map[string]string{"url": raw})
	resp, err := http.Post(api+"/api/check", "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Println("API returned status:", resp.Status)
		return
	}

	var report struct {
		URL            string  `json:"url"`
		Status         string  `json:"status"`
		ResponseTimeMS float64 `json:"response_time_ms"`
		Region         string  `json:"region"`
		Summary        string  `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		fmt.Println("Could not decode response:", err)
		return
	}

	fmt.Printf("%s is %s (%.0f ms, region %s)\n", report.URL, report.Status, report.ResponseTimeMS, report.Region)
	fmt.Println(report.Summary)
}
