package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"simple-calculator/internal/calc"
	"simple-calculator/internal/logger"
)

const (
	serviceName    = "calculator.Calculator"
	evaluateMethod = "/" + serviceName + "/Evaluate"
)

// Поля ответа Evaluate
const (
	fieldResult   = "result"
	fieldError    = "error"
	fieldOperator = "operator"

	errorNotParsable     = "not_parsable"
	errorInvalidOperator = "invalid_operator"
)

// CalculatorServer - серверная часть сервиса calculator.Calculator
type CalculatorServer interface {
	Evaluate(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

var calculatorServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Evaluate",
			Handler:    evaluateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "calculator.proto",
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: evaluateMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculatorServer).Evaluate(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterCalculatorServer регистрирует сервис на gRPC сервере
func RegisterCalculatorServer(s *grpc.Server, srv CalculatorServer) {
	s.RegisterService(&calculatorServiceDesc, srv)
}

// CalculatorService вычисляет присланные строки.
// Ошибки разбора возвращаются в теле ответа, а не статусом gRPC.
type CalculatorService struct{}

func (s *CalculatorService) Evaluate(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	logger.LogINFO(fmt.Sprintf("gRPC: Evaluate %q", req.GetValue()))

	result, err := calc.Calculate(req.GetValue())
	if err == nil {
		return &structpb.Struct{Fields: map[string]*structpb.Value{
			fieldResult: structpb.NewNumberValue(result),
		}}, nil
	}

	var operatorErr *calc.InvalidOperatorError
	switch {
	case errors.Is(err, calc.ErrNotParsable):
		return &structpb.Struct{Fields: map[string]*structpb.Value{
			fieldError: structpb.NewStringValue(errorNotParsable),
		}}, nil
	case errors.As(err, &operatorErr):
		return &structpb.Struct{Fields: map[string]*structpb.Value{
			fieldError:    structpb.NewStringValue(errorInvalidOperator),
			fieldOperator: structpb.NewStringValue(string(operatorErr.Operator)),
		}}, nil
	default:
		return nil, err
	}
}

// StartGRPCServer запускает gRPC сервер на указанном адресе и возвращает экземпляр сервера
func StartGRPCServer(address string) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}

	s := grpc.NewServer()
	RegisterCalculatorServer(s, &CalculatorService{})

	logger.LogINFO(fmt.Sprintf("gRPC calculator started on %s", address))

	go func() {
		if err := s.Serve(lis); err != nil && err != grpc.ErrServerStopped {
			logger.LogERROR(fmt.Sprintf("gRPC server failed: %v", err))
		}
	}()

	return s, nil
}
