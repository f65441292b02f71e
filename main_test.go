package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	if err := app.Run(append([]string{"mindsync"}, args...)); err != nil {
		t.Fatalf("Run(%v) error = %v", args, err)
	}
	return out.String()
}

func TestQuickstart(t *testing.T) {
	out := runApp(t, "quickstart")
	if !strings.Contains(out, "mindsync Quick Start") {
		t.Errorf("quickstart output = %q", out)
	}
}

func TestClassifyCommand(t *testing.T) {
	out := runApp(t, "--quiet", "--json", "classify", "https://www.goodreads.com/book/show/5107")

	var got map[string]interface{}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got["contentType"] != "book" {
		t.Errorf("contentType = %v, want book", got["contentType"])
	}
}

func TestSaveAndListCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	runApp(t, "--quiet", "--db", dbPath, "--seed", "3", "save", "--tag", "go", "https://go.dev/blog/")

	out := runApp(t, "--quiet", "--json", "--db", dbPath, "list", "--tag", "go")
	var got struct {
		Items      []map[string]interface{} `json:"items"`
		TotalCount int                      `json:"totalCount"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.TotalCount != 1 || len(got.Items) != 1 {
		t.Fatalf("list = %+v, want one item", got)
	}
	if got.Items[0]["url"] != "https://go.dev/blog/" {
		t.Errorf("url = %v", got.Items[0]["url"])
	}
}

func TestMissingArgs(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	if err := app.Run([]string{"mindsync", "get"}); err == nil {
		t.Error("get without id: error = nil, want error")
	}
}
