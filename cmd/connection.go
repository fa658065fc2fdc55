// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 Stefan Hacker

package cmd

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hacst/swire/pkg/capture"
	"github.com/hacst/swire/pkg/swire"
	"go.bug.st/serial"
	"golang.org/x/term"
)

// ErrConnectionClosed is returned when reading from a closed WebSocket connection
var ErrConnectionClosed = fmt.Errorf("websocket connection closed")

// WebSocketConnection wraps a WebSocket connection for byte-level reading
type WebSocketConnection struct {
	conn      *websocket.Conn
	buf       []byte
	bufOffset int
	closed    bool
}

func (w *WebSocketConnection) Read(p []byte) (int, error) {
	if w.closed {
		return 0, ErrConnectionClosed
	}

	// Drain buffered data first
	if w.bufOffset < len(w.buf) {
		n := copy(p, w.buf[w.bufOffset:])
		w.bufOffset += n
		return n, nil
	}

	for {
		messageType, data, err := w.conn.ReadMessage()
		if err != nil {
			w.closed = true
			return 0, err
		}

		// Sample streams are binary messages only
		if messageType != websocket.BinaryMessage {
			continue
		}

		w.buf = data
		w.bufOffset = 0
		n := copy(p, w.buf)
		w.bufOffset = n
		return n, nil
	}
}

func (w *WebSocketConnection) Close() error {
	return w.conn.Close()
}

// OpenWebSocketConnection opens a WebSocket connection with HTTP Basic auth
func OpenWebSocketConnection(wsURL, username, password string, skipSSLVerify bool) (io.ReadCloser, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}

	switch u.Scheme {
	case "ws", "wss":
		// OK
	default:
		return nil, fmt.Errorf("unsupported URL scheme: %s (use ws:// or wss://)", u.Scheme)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	if u.Scheme == "wss" {
		dialer.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: skipSSLVerify,
		}
	}

	headers := http.Header{}
	if username != "" && password != "" {
		credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		headers.Set("Authorization", "Basic "+credentials)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	conn, resp, err := dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("WebSocket connection failed (HTTP %d): %v", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("WebSocket connection failed: %v", err)
	}

	return &WebSocketConnection{conn: conn}, nil
}

// GetPassword retrieves the WebSocket password from the environment or
// prompts the user
func GetPassword() (string, error) {
	if pw := os.Getenv("SWIRETAP_PASSWORD"); pw != "" {
		return pw, nil
	}

	fmt.Fprint(os.Stderr, "Password: ")

	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		// Fallback to regular input if terminal functions fail
		reader := bufio.NewReader(os.Stdin)
		password, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		fmt.Fprintln(os.Stderr)
		return strings.TrimSpace(password), nil
	}

	fmt.Fprintln(os.Stderr)
	return string(passwordBytes), nil
}

// OpenEdgeSource builds the decoder's edge source from the resolved
// options. The returned closer is nil for sources that are fully
// consumed at open time (VCD files).
func OpenEdgeSource(opts Options) (swire.EdgeSource, io.Closer, string, error) {
	switch {
	case opts.File != "":
		f, err := os.Open(opts.File)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to open capture %s: %v", opts.File, err)
		}

		if strings.EqualFold(filepath.Ext(opts.File), ".vcd") {
			defer f.Close()
			src, err := capture.ParseVCD(f)
			if err != nil {
				return nil, nil, "", fmt.Errorf("failed to parse %s: %v", opts.File, err)
			}
			return src, nil, fmt.Sprintf("VCD file %s", opts.File), nil
		}

		if opts.SampleRate <= 0 {
			f.Close()
			return nil, nil, "", fmt.Errorf("raw capture %s needs --samplerate", opts.File)
		}
		src := capture.NewSampleSource(f, opts.SampleRate)
		return src, f, fmt.Sprintf("raw file %s @ %.0f Hz", opts.File, opts.SampleRate), nil

	case opts.Port != "":
		if opts.SampleRate <= 0 {
			return nil, nil, "", fmt.Errorf("serial capture needs --samplerate")
		}
		mode := &serial.Mode{
			BaudRate: opts.Baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
		port, err := serial.Open(opts.Port, mode)
		if err != nil {
			return nil, nil, "", fmt.Errorf("failed to open serial port %s: %v", opts.Port, err)
		}
		src := capture.NewSampleSource(port, opts.SampleRate)
		return src, port, fmt.Sprintf("serial %s @ %d baud, %.0f Hz", opts.Port, opts.Baud, opts.SampleRate), nil

	case opts.URL != "":
		if opts.SampleRate <= 0 {
			return nil, nil, "", fmt.Errorf("WebSocket capture needs --samplerate")
		}
		password := ""
		if opts.Username != "" {
			var err error
			password, err = GetPassword()
			if err != nil {
				return nil, nil, "", err
			}
		}
		conn, err := OpenWebSocketConnection(opts.URL, opts.Username, password, wsNoSSLVerify)
		if err != nil {
			return nil, nil, "", err
		}
		src := capture.NewSampleSource(conn, opts.SampleRate)
		return src, conn, fmt.Sprintf("WebSocket %s @ %.0f Hz", opts.URL, opts.SampleRate), nil
	}

	return nil, nil, "", fmt.Errorf("no capture source: use --file, --port or --url")
}
