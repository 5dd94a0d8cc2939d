package grpc

// proto.go defines the gRPC server and client for bib/risk/v1/credit_risk.proto.
// It stands in for buf-generated code; messages travel with the json codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	serviceName = "bib.risk.v1.CreditRiskService"

	methodScoreApplicant = "/" + serviceName + "/ScoreApplicant"
	methodDescribeModel  = "/" + serviceName + "/DescribeModel"
)

// CreditRiskServiceServer is the server API for CreditRiskService.
type CreditRiskServiceServer interface {
	ScoreApplicant(context.Context, *ScoreApplicantRequest) (*ScoreApplicantResponse, error)
	DescribeModel(context.Context, *DescribeModelRequest) (*DescribeModelResponse, error)
	mustEmbedUnimplementedCreditRiskServiceServer()
}

// UnimplementedCreditRiskServiceServer provides forward-compatible default implementations.
type UnimplementedCreditRiskServiceServer struct{}

func (UnimplementedCreditRiskServiceServer) ScoreApplicant(context.Context, *ScoreApplicantRequest) (*ScoreApplicantResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ScoreApplicant not implemented")
}
func (UnimplementedCreditRiskServiceServer) DescribeModel(context.Context, *DescribeModelRequest) (*DescribeModelResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DescribeModel not implemented")
}
func (UnimplementedCreditRiskServiceServer) mustEmbedUnimplementedCreditRiskServiceServer() {}

// RegisterCreditRiskServiceServer registers the CreditRiskServiceServer with the gRPC server.
func RegisterCreditRiskServiceServer(s grpclib.ServiceRegistrar, srv CreditRiskServiceServer) {
	s.RegisterService(&_CreditRiskService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditRiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CreditRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ScoreApplicant", Handler: _CreditRiskService_ScoreApplicant_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "DescribeModel", Handler: _CreditRiskService_DescribeModel_Handler},   //nolint:revive // gRPC handler registration
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "bib/risk/v1/credit_risk.proto",
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditRiskService_ScoreApplicant_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ScoreApplicantRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRiskServiceServer).ScoreApplicant(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: methodScoreApplicant,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRiskServiceServer).ScoreApplicant(ctx, req.(*ScoreApplicantRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditRiskService_DescribeModel_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DescribeModelRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditRiskServiceServer).DescribeModel(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: methodDescribeModel,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditRiskServiceServer).DescribeModel(ctx, req.(*DescribeModelRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// CreditRiskServiceClient is the client API for CreditRiskService.
type CreditRiskServiceClient interface {
	ScoreApplicant(ctx context.Context, in *ScoreApplicantRequest, opts ...grpclib.CallOption) (*ScoreApplicantResponse, error)
	DescribeModel(ctx context.Context, in *DescribeModelRequest, opts ...grpclib.CallOption) (*DescribeModelResponse, error)
}

type creditRiskServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewCreditRiskServiceClient returns a client that always uses the json codec.
func NewCreditRiskServiceClient(cc grpclib.ClientConnInterface) CreditRiskServiceClient {
	return &creditRiskServiceClient{cc: cc}
}

func (c *creditRiskServiceClient) ScoreApplicant(ctx context.Context, in *ScoreApplicantRequest, opts ...grpclib.CallOption) (*ScoreApplicantResponse, error) {
	out := new(ScoreApplicantResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, methodScoreApplicant, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *creditRiskServiceClient) DescribeModel(ctx context.Context, in *DescribeModelRequest, opts ...grpclib.CallOption) (*DescribeModelResponse, error) {
	out := new(DescribeModelResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(codecName)}, opts...)
	if err := c.cc.Invoke(ctx, methodDescribeModel, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
