package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/fatetable/internal/api/request"
	"github.com/mcoot/fatetable/internal/api/response"
)

// closeWait bounds how long a session waits for the server to answer a close frame
const closeWait = 2 * time.Second

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Join a live table session",
		Long: `Connect to the table websocket and issue commands line by line.

Every change to your table is printed as it happens, including changes made
by other users. Type "help" for the list of commands.

Press Ctrl+C or type "quit" to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return runSession(ctx, cmd.InOrStdin(), out)
		},
	}

	cmd.Flags().StringVar(&cfg.User, "user", cfg.User, "User id to connect as (env: FATETABLE_USER)")

	return cmd
}

func runSession(ctx context.Context, in io.Reader, out *Output) error {
	conn, err := client.DialTable(ctx, cfg.User)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if cfg.Output != "json" {
		out.PrintMessage(`Connected. Type "help" for commands.`)
	}

	received := make(chan error, 1)
	go func() { received <- readSession(conn, out) }()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	seq := 0
	for {
		select {
		case <-ctx.Done():
			return closeSession(conn, received, out)

		case err := <-received:
			return err

		case line, ok := <-lines:
			if !ok {
				return closeSession(conn, received, out)
			}
			line = strings.TrimSpace(line)
			switch line {
			case "":
				continue
			case "quit", "exit":
				return closeSession(conn, received, out)
			case "help":
				out.PrintMessage(sessionHelp)
				continue
			}

			cmd, err := ParseLine(line)
			if err != nil {
				out.PrintError(err)
				continue
			}

			seq++
			env := request.FromCommand(strconv.Itoa(seq), cmd)
			if cfg.Verbose {
				data, _ := json.Marshal(env)
				out.Debugf("> %s", data)
			}
			if err := conn.WriteJSON(env); err != nil {
				return fmt.Errorf("send failed: %w", err)
			}
		}
	}
}

// readSession prints server messages until the connection ends. A normal
// closure from the server, such as the gamemaster closing the table, is not
// an error.
func readSession(conn *websocket.Conn, out *Output) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == websocket.CloseNormalClosure {
				if cfg.Output != "json" {
					reason := closeErr.Text
					if reason == "" {
						reason = "connection closed"
					}
					out.PrintMessage("Disconnected: " + reason)
				}
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		var msg response.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			// Keep-alive replies are plain text
			continue
		}
		out.Print(msg)
	}
}

// closeSession sends a close frame and waits briefly for the server to
// acknowledge it
func closeSession(conn *websocket.Conn, received <-chan error, out *Output) error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWait)); err != nil {
		return nil
	}

	select {
	case err := <-received:
		var closeErr *websocket.CloseError
		if err != nil && errors.As(err, &closeErr) {
			return nil
		}
		return err
	case <-time.After(closeWait):
		if cfg.Output != "json" {
			out.PrintMessage("Disconnected")
		}
		return nil
	}
}
