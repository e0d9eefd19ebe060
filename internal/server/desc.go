package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "gacha.v1.GachaService"

// GachaServiceServer is the server API for the gacha service. Requests and
// responses are google.protobuf.Struct documents; field names are listed on
// each Service method.
type GachaServiceServer interface {
	Pull(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Status(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Grant(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(GachaServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GachaServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GachaServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// GachaServiceDesc describes the service for grpc.Server registration.
var GachaServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GachaServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Pull", Handler: unaryHandler("Pull", GachaServiceServer.Pull)},
		{MethodName: "Status", Handler: unaryHandler("Status", GachaServiceServer.Status)},
		{MethodName: "Grant", Handler: unaryHandler("Grant", GachaServiceServer.Grant)},
		{MethodName: "Simulate", Handler: unaryHandler("Simulate", GachaServiceServer.Simulate)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gacha/v1/gacha.proto",
}

// RegisterGachaServiceServer registers srv on s.
func RegisterGachaServiceServer(s grpc.ServiceRegistrar, srv GachaServiceServer) {
	s.RegisterService(&GachaServiceDesc, srv)
}

// Client calls the gacha service over a client connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Pull(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Pull", in, opts...)
}

func (c *Client) Status(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Status", in, opts...)
}

func (c *Client) Grant(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Grant", in, opts...)
}

func (c *Client) Simulate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Simulate", in, opts...)
}
