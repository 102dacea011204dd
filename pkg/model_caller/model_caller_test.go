package model_caller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newscheck/internal/dto"
)

func TestCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("解析请求体失败: %v", err)
		}
		if body["model"] != "test-model" {
			t.Errorf("model = %v", body["model"])
		}
		if body["max_tokens"] != float64(300) {
			t.Errorf("max_tokens = %v", body["max_tokens"])
		}
		if body["temperature"] != 0.1 {
			t.Errorf("temperature = %v", body["temperature"])
		}

		json.NewEncoder(w).Encode(dto.ChatCompletionResponse{
			Choices: []dto.Choice{
				{Message: dto.Message{Role: "assistant", Content: "hello"}},
			},
		})
	}))
	defer server.Close()

	mc := NewModelCaller(server.URL, "test-key", "test-model", 5*time.Second)

	resp, err := mc.Call(context.Background(), []dto.Message{
		{Role: "user", Content: "hi"},
	}, &CallOptions{MaxTokens: 300, Temperature: 0.1})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if resp.Content() != "hello" {
		t.Errorf("Content() = %q, want hello", resp.Content())
	}
}

func TestCallNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	mc := NewModelCaller(server.URL, "", "test-model", 5*time.Second)

	_, err := mc.Call(context.Background(), []dto.Message{{Role: "user", Content: "hi"}}, nil)
	if err == nil {
		t.Fatal("Call() expected error on non-200 status")
	}
	if !strings.Contains(err.Error(), "status=429") {
		t.Errorf("error = %v, want status=429", err)
	}
}

func TestConcurrencyLimiter(t *testing.T) {
	limiter := NewConcurrencyLimiter(1)
	ctx := context.Background()

	if err := limiter.Acquire(ctx, "k"); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	// 槽位已满,带超时的ctx应失败
	timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if err := limiter.Acquire(timeoutCtx, "k"); err == nil {
		t.Fatal("Acquire() expected error when slots are full")
	}

	limiter.Release(ctx, "k")
	if err := limiter.Acquire(ctx, "k"); err != nil {
		t.Fatalf("Acquire() after release error = %v", err)
	}
}

func TestCallWithConcurrencyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.ChatCompletionResponse{
			Choices: []dto.Choice{
				{Message: dto.Message{Role: "assistant", Content: "ok"}},
			},
		})
	}))
	defer server.Close()

	mc := NewModelCaller(server.URL, "", "test-model", 5*time.Second)
	limiter := NewConcurrencyLimiter(1)

	resp, err := mc.CallWithConcurrencyLimit(context.Background(), limiter, "k",
		[]dto.Message{{Role: "user", Content: "hi"}}, nil)
	if err != nil {
		t.Fatalf("CallWithConcurrencyLimit() error = %v", err)
	}
	if resp.Content() != "ok" {
		t.Errorf("Content() = %q", resp.Content())
	}

	// 调用结束后槽位已释放
	if err := limiter.Acquire(context.Background(), "k"); err != nil {
		t.Fatalf("Acquire() after call error = %v", err)
	}
}
