package guestchat_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	guestchat "example.com/guestchat/app"
)

func setUpTestServer(t *testing.T, seed bool) (*httptest.Server, func()) {
	t.Helper()

	config := &guestchat.Config{
		Port:           8080,
		Hostname:       "127.0.0.1",
		AllowedOrigins: []string{"*"},
		Seed:           seed,
	}
	app := guestchat.New(context.Background(), config)

	server := httptest.NewServer(app.Handler())
	return server, server.Close
}

type errorResponse struct {
	Error string `json:"error"`
}

func encodeJsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func decodeJsonBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(res.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	return v
}

func sendListRoomsRequest(t *testing.T, server *httptest.Server) *http.Response {
	t.Helper()
	res, err := server.Client().Get(server.URL + "/api/rooms")
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func sendCreateRoomRequest(t *testing.T, server *httptest.Server, body io.Reader) *http.Response {
	t.Helper()
	res, err := server.Client().Post(server.URL+"/api/rooms", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func sendDeleteRoomRequest(t *testing.T, server *httptest.Server, roomID string) *http.Response {
	t.Helper()
	u := server.URL + "/api/rooms"
	if roomID != "" {
		u += "?roomId=" + url.QueryEscape(roomID)
	}
	req, err := http.NewRequest(http.MethodDelete, u, nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := server.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func sendListMessagesRequest(t *testing.T, server *httptest.Server, roomID string) *http.Response {
	t.Helper()
	u := server.URL + "/api/messages"
	if roomID != "" {
		u += "?roomId=" + url.QueryEscape(roomID)
	}
	res, err := server.Client().Get(u)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func sendPostMessageRequest(t *testing.T, server *httptest.Server, body io.Reader) *http.Response {
	t.Helper()
	res, err := server.Client().Post(server.URL+"/api/messages", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func sendDeleteMessageRequest(t *testing.T, server *httptest.Server, roomID, messageID string) *http.Response {
	t.Helper()
	u := server.URL + "/api/messages"
	query := url.Values{}
	if roomID != "" {
		query.Set("roomId", roomID)
	}
	if messageID != "" {
		query.Set("messageId", messageID)
	}
	if len(query) > 0 {
		u = fmt.Sprintf("%s?%s", u, query.Encode())
	}
	req, err := http.NewRequest(http.MethodDelete, u, nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := server.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return res
}
