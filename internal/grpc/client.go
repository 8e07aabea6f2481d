package grpc

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"simple-calculator/internal/calc"
	"simple-calculator/internal/logger"
)

// GRPCCalculator вычисляет строки на удаленном сервере калькулятора
type GRPCCalculator struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

// NewGRPCCalculator подключается к серверу калькулятора по адресу address
func NewGRPCCalculator(address string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCCalculator, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.Dial(address, opts...)
	if err != nil {
		return nil, err
	}

	return &GRPCCalculator{conn: conn, timeout: timeout}, nil
}

// Close закрывает соединение с сервером
func (c *GRPCCalculator) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Calculate отправляет строку на сервер. Ошибки разбора восстанавливаются
// в calc.ErrNotParsable и *calc.InvalidOperatorError.
func (c *GRPCCalculator) Calculate(ctx context.Context, line string) (float64, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, evaluateMethod, wrapperspb.String(line), resp); err != nil {
		logger.LogERROR(fmt.Sprintf("gRPC: Evaluate failed: %v", err))
		return 0, err
	}

	return decodeEvaluateResponse(resp)
}

func decodeEvaluateResponse(resp *structpb.Struct) (float64, error) {
	fields := resp.GetFields()

	if result, ok := fields[fieldResult]; ok {
		return result.GetNumberValue(), nil
	}

	switch fields[fieldError].GetStringValue() {
	case errorNotParsable:
		return 0, calc.ErrNotParsable
	case errorInvalidOperator:
		operator, _ := utf8.DecodeRuneInString(fields[fieldOperator].GetStringValue())
		return 0, &calc.InvalidOperatorError{Operator: operator}
	default:
		return 0, fmt.Errorf("unexpected evaluate response: %v", resp)
	}
}
