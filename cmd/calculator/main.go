package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"simple-calculator/internal/config"
	"simple-calculator/internal/grpc"
	"simple-calculator/internal/logger"
	"simple-calculator/internal/repl"
)

var cli struct {
	Env    string `help:"Path to .env file." default:".env" type:"path"`
	Remote string `help:"Address of a calc_server gRPC endpoint. Calculations run locally when empty." placeholder:"HOST:PORT"`
}

func main() {
	kong.Parse(&cli, kong.Description(`
Two-operand calculator. Enter a calculation such as "3 + 4" and get the result.
Supported operators are + - * /. Type "quit" to exit.
`))

	config.InitConfig(cli.Env)
	logger.InitCLILogger()

	logger.INFO.Println("Calculator started")
	err := run(context.Background(), cli.Remote, config.AppConfig.RequestTimeout, os.Stdin, os.Stdout)
	if err != nil {
		logger.ERROR.Println(err)
		os.Stderr.WriteString(err.Error() + "\n")
		logger.CloseLogger()
		os.Exit(1)
	}

	logger.INFO.Println("Calculator stopped")
	logger.CloseLogger()
}

// run выбирает калькулятор и крутит REPL. Соединение с сервером
// закрывается здесь же, до возможного os.Exit в main.
func run(ctx context.Context, remote string, timeout time.Duration, in io.Reader, out io.Writer) error {
	var calculator repl.Calculator = repl.LocalCalculator{}
	if remote != "" {
		client, err := grpc.NewGRPCCalculator(remote, timeout)
		if err != nil {
			return fmt.Errorf("failed to create gRPC client: %w", err)
		}
		defer client.Close()

		logger.LogINFO("Using remote calculator at " + remote)
		calculator = client
	}

	return repl.Run(ctx, in, out, calculator)
}
