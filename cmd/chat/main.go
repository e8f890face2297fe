// Команда chat - разговор с советником в терминале, без Telegram.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ivanoskov/finbot/internal/app"
	"github.com/ivanoskov/finbot/internal/model"
	"github.com/ivanoskov/finbot/internal/service"
)

const terminalChatID = 0

func main() {
	a, err := app.New()
	if err != nil {
		app.NewLogger("info").WithError(err).Fatal("failed to start")
	}
	ctx := context.Background()
	defer a.Close(ctx)

	fmt.Println(service.Greeting)
	fmt.Println("Type /reset to start over, /quit to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/quit", "/exit":
			return
		case "/reset":
			a.Sessions.Reset(ctx, terminalChatID)
			fmt.Println(service.Greeting)
			continue
		}

		sess := a.Sessions.Acquire(terminalChatID)
		sess.Record(model.RoleUser, text, time.Now())
		reply := a.Advisor.Turn(ctx, text, sess.Profile)
		sess.Record(model.RoleAssistant, reply.Text, time.Now())
		sess.Unlock()

		fmt.Println(reply.Text)
	}

	if err := scanner.Err(); err != nil {
		a.Log.WithError(err).Error("read input")
	}
}
