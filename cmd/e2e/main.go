package main

// 端到端巡检工具：对一个正在运行的实例做黑盒探测，覆盖根端点、
// 求和端点的成功与校验失败路径，并核对每个响应的安全响应头。
// 本工具是 CI 中动态扫描（ZAP baseline）阶段的本地替身，任一断言失败即以非零码退出。

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

var verbose bool

func banner(title string) {
	log.Printf("\n=== %s ===", title)
}

func step(format string, args ...interface{}) {
	log.Printf(" • "+format, args...)
}

// requiredHeaders 与 middlewares.SecurityHeaders 保持一致；
// 巡检按「头必须存在且取值精确相等」核对。
var requiredHeaders = map[string]string{
	"X-Content-Type-Options":       "nosniff",
	"X-Frame-Options":              "DENY",
	"X-XSS-Protection":             "1; mode=block",
	"Referrer-Policy":              "no-referrer",
	"Strict-Transport-Security":    "max-age=31536000; includeSubDomains",
	"Cross-Origin-Opener-Policy":   "same-origin",
	"Cross-Origin-Embedder-Policy": "require-corp",
	"Cross-Origin-Resource-Policy": "same-origin",
	"Cache-Control":                "no-store, max-age=0",
	"Pragma":                       "no-cache",
}

func main() {
	var (
		base    string
		timeout time.Duration
	)
	flag.StringVar(&base, "base", "http://127.0.0.1:8000", "Base URL of the running instance")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP timeout for requests")
	flag.BoolVar(&verbose, "v", true, "Verbose logging")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	banner("root endpoint")
	resp := mustGet(client, base+"/")
	checkStatus(resp, 200)
	checkHeaders(resp)
	var info map[string]interface{}
	decodeBody(resp, &info)
	if info["status"] != "ok" {
		log.Fatalf("unexpected root payload: %v", info)
	}
	step("root payload ok: service=%v version=%v", info["service"], info["version"])

	banner("add happy path")
	resp = mustPost(client, base+"/add", map[string]interface{}{"a": 2, "b": 3})
	checkStatus(resp, 200)
	checkHeaders(resp)
	var sum struct {
		Result float64 `json:"result"`
	}
	decodeBody(resp, &sum)
	if sum.Result != 5 {
		log.Fatalf("expected result 5, got %v", sum.Result)
	}
	step("2 + 3 = %v", sum.Result)

	banner("add validation path")
	resp = mustPost(client, base+"/add", map[string]interface{}{"a": "x", "b": 3})
	checkStatus(resp, 422)
	checkHeaders(resp)
	var verr struct {
		Error   string `json:"error"`
		Details []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"details"`
	}
	decodeBody(resp, &verr)
	if verr.Error != "validation_failed" || len(verr.Details) == 0 || verr.Details[0].Field != "a" {
		log.Fatalf("unexpected validation payload: %+v", verr)
	}
	step("field %q rejected: %s", verr.Details[0].Field, verr.Details[0].Reason)

	banner("done")
	log.Println("all probes passed")
}

func mustGet(client *http.Client, url string) *http.Response {
	resp, err := client.Get(url)
	if err != nil {
		log.Fatalf("GET %s: %v", url, err)
	}
	return resp
}

func mustPost(client *http.Client, url string, body interface{}) *http.Response {
	b, _ := json.Marshal(body)
	resp, err := client.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		log.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func checkStatus(resp *http.Response, want int) {
	if resp.StatusCode != want {
		log.Fatalf("%s %s: expected status %d, got %d", resp.Request.Method, resp.Request.URL, want, resp.StatusCode)
	}
}

func checkHeaders(resp *http.Response) {
	for name, want := range requiredHeaders {
		if got := resp.Header.Get(name); got != want {
			log.Fatalf("%s: header %s = %q, want %q", resp.Request.URL, name, got, want)
		}
	}
	if verbose {
		step("all %d security headers present on %s", len(requiredHeaders), resp.Request.URL.Path)
	}
}

func decodeBody(resp *http.Response, v interface{}) {
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		log.Fatalf("decode %s: %v", resp.Request.URL, err)
	}
	if verbose {
		step("decoded %s response: %s", resp.Request.URL.Path, fmt.Sprintf("%v", v))
	}
}
