package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/edupilot/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Tasks(ctx context.Context) error
	AddTask(ctx context.Context) error
	SetStatus(ctx context.Context, args []string) error
	DeleteTask(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error

	Logs(ctx context.Context) error
	AddLog(ctx context.Context) error
	DeleteLog(ctx context.Context, args []string) error

	Dashboard(ctx context.Context) error
	Focus(ctx context.Context) error
	Export(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: signup, login, focus, exit"
	helpLoggedIn  = "Available commands: tasks, addtask, status <id> <status>, deltask <id>, " +
		"filter [status=..] [priority=..] [tag=..], logs, addlog, dellog <id>, dashboard, focus, export, logout, exit"
)

// needsLogin lists the commands that talk to protected data.
var needsLogin = map[string]bool{
	"tasks": true, "addtask": true, "status": true, "deltask": true, "filter": true,
	"logs": true, "addlog": true, "dellog": true, "dashboard": true, "export": true,
}

// runREPL reads commands from reader until EOF or "exit"/"quit", dispatching
// each to a. A failing command prints its user-facing message and the loop
// goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("edupilot%s> ", prefixSpace(statusFn())))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin[cmd] && !a.isLoggedIn() {
			printlnFn("Please log in first.")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "signup", "register":
			cmdErr = a.Signup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)

		case "tasks", "l", "list":
			cmdErr = a.Tasks(ctx)
		case "addtask":
			cmdErr = a.AddTask(ctx)
		case "status":
			cmdErr = a.SetStatus(ctx, args)
		case "deltask":
			cmdErr = a.DeleteTask(ctx, args)
		case "filter":
			cmdErr = a.Filter(ctx, args)

		case "logs":
			cmdErr = a.Logs(ctx)
		case "addlog":
			cmdErr = a.AddLog(ctx)
		case "dellog":
			cmdErr = a.DeleteLog(ctx, args)

		case "dashboard":
			cmdErr = a.Dashboard(ctx)
		case "focus":
			cmdErr = a.Focus(ctx)
		case "export":
			cmdErr = a.Export(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", userMessage(cmdErr))
		}
	}
}

func prefixSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

// userMessage picks the text to show for err.
func userMessage(err error) string {
	return common.UserMessage(err, err.Error())
}
