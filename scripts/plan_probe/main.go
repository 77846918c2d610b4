// Command plan_probe exercises the optimizer endpoint of a running
// instance and prints the ranked candidates. Useful for eyeballing
// search behavior against a seeded database without a frontend.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type probeRequest struct {
	TermID    string   `json:"termId"`
	CourseIDs []string `json:"courseIds"`
	TopK      int      `json:"topK,omitempty"`
}

type probeCandidate struct {
	Rank     int     `json:"rank"`
	Score    float64 `json:"score"`
	Credits  float64 `json:"credits"`
	Sections []struct {
		CourseCode string `json:"courseCode"`
		Instructor string `json:"instructor"`
	} `json:"sections"`
}

type probeResponse struct {
	Data struct {
		PlanID     string           `json:"planId"`
		Candidates []probeCandidate `json:"candidates"`
		Explored   int              `json:"explored"`
		Truncated  bool             `json:"truncated"`
	} `json:"data"`
}

func main() {
	var (
		base        string
		token       string
		requestPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&token, "token", os.Getenv("PLANNER_TOKEN"), "Bearer token for the authenticated endpoints")
	flag.StringVar(&requestPath, "request", filepath.Join("scripts", "plan_probe", "request.json"), "Path to JSON request file")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP client timeout")
	flag.Parse()

	req, err := loadRequest(requestPath)
	if err != nil {
		log.Fatalf("failed to load request: %v", err)
	}

	client := &http.Client{Timeout: timeout}

	started := time.Now()
	resp, err := postOptimize(client, base, token, req)
	if err != nil {
		log.Fatalf("optimize request failed: %v", err)
	}
	elapsed := time.Since(started)

	fmt.Printf("plan %s: %d candidates, %d assignments explored (truncated=%v) in %s\n",
		resp.Data.PlanID, len(resp.Data.Candidates), resp.Data.Explored, resp.Data.Truncated, elapsed.Round(time.Millisecond))
	for _, cand := range resp.Data.Candidates {
		var picks []string
		for _, s := range cand.Sections {
			picks = append(picks, fmt.Sprintf("%s (%s)", s.CourseCode, s.Instructor))
		}
		fmt.Printf("  #%d score=%.4f credits=%.1f  %s\n", cand.Rank, cand.Score, cand.Credits, strings.Join(picks, ", "))
	}
}

func loadRequest(path string) (*probeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var req probeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	if req.TermID == "" || len(req.CourseIDs) == 0 {
		return nil, fmt.Errorf("request in %s must set termId and courseIds", path)
	}
	return &req, nil
}

func postOptimize(client *http.Client, base, token string, probe *probeRequest) (*probeResponse, error) {
	body, err := json.Marshal(probe)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(base, "/") + "/api/v1/plans/optimize"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed probeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}
