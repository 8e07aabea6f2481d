package grpc

import (
	"context"
	"errors"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"simple-calculator/internal/calc"
	"simple-calculator/internal/repl"
)

// Клиент должен подходить для REPL
var _ repl.Calculator = (*GRPCCalculator)(nil)

// startBufconnServer поднимает сервис в памяти и возвращает подключенный клиент
func startBufconnServer(t *testing.T) *GRPCCalculator {
	lis := bufconn.Listen(1024 * 1024)

	s := grpc.NewServer()
	RegisterCalculatorServer(s, &CalculatorService{})
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	client, err := NewGRPCCalculator("bufnet", time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// TestCalculatorService_Evaluate проверяет ответы сервиса без сети
func TestCalculatorService_Evaluate(t *testing.T) {
	service := &CalculatorService{}

	t.Run("Result", func(t *testing.T) {
		resp, err := service.Evaluate(context.Background(), wrapperspb.String("1/2"))
		require.NoError(t, err)
		assert.Equal(t, 0.5, resp.GetFields()[fieldResult].GetNumberValue())
		assert.NotContains(t, resp.GetFields(), fieldError)
	})

	t.Run("Not parsable", func(t *testing.T) {
		resp, err := service.Evaluate(context.Background(), wrapperspb.String("1+"))
		require.NoError(t, err)
		assert.Equal(t, errorNotParsable, resp.GetFields()[fieldError].GetStringValue())
		assert.NotContains(t, resp.GetFields(), fieldResult)
	})

	t.Run("Invalid operator", func(t *testing.T) {
		resp, err := service.Evaluate(context.Background(), wrapperspb.String("1 % 2"))
		require.NoError(t, err)
		assert.Equal(t, errorInvalidOperator, resp.GetFields()[fieldError].GetStringValue())
		assert.Equal(t, "%", resp.GetFields()[fieldOperator].GetStringValue())
	})
}

// TestGRPCCalculator проверяет полный цикл запроса через gRPC
func TestGRPCCalculator(t *testing.T) {
	client := startBufconnServer(t)

	tests := []struct {
		input    string
		expected float64
	}{
		{input: "1+2", expected: 3},
		{input: "1-2", expected: -1},
		{input: "1*2", expected: 2},
		{input: "1/2", expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := client.Calculate(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	t.Run("Division by zero", func(t *testing.T) {
		result, err := client.Calculate(context.Background(), "5/0")
		require.NoError(t, err)
		assert.True(t, math.IsInf(result, 1))
	})

	t.Run("Not parsable", func(t *testing.T) {
		_, err := client.Calculate(context.Background(), "abc")
		assert.ErrorIs(t, err, calc.ErrNotParsable)
	})

	t.Run("Invalid operator", func(t *testing.T) {
		_, err := client.Calculate(context.Background(), "6 × 7")

		var operatorErr *calc.InvalidOperatorError
		require.True(t, errors.As(err, &operatorErr), "expected InvalidOperatorError, got %v", err)
		assert.Equal(t, '×', operatorErr.Operator)
	})
}

func TestGRPCCalculatorUnavailable(t *testing.T) {
	lis := bufconn.Listen(1024)
	lis.Close()

	client, err := NewGRPCCalculator("bufnet", 200*time.Millisecond,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Calculate(context.Background(), "1+1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, calc.ErrNotParsable)
}

func TestDecodeEvaluateResponseUnexpected(t *testing.T) {
	_, err := decodeEvaluateResponse(nil)
	assert.Error(t, err)
}
