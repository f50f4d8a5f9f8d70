package gameserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// BattleServiceName is the fully qualified gRPC service name.
const BattleServiceName = "skirmish.battle.v1.BattleService"

// BattleServiceServer is the server API of the battle service. Requests and
// responses are JSON documents carried as google.protobuf.Struct, shaped like the
// contracts in package api.
type BattleServiceServer interface {
	RunBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateBattlefield(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListBattlefields(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type battleMethod func(BattleServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler adapts a BattleServiceServer method to grpc.MethodHandler.
func unaryHandler(name string, call battleMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BattleServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + BattleServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(BattleServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// BattleServiceDesc describes the battle service for grpc.Server registration.
var BattleServiceDesc = grpc.ServiceDesc{
	ServiceName: BattleServiceName,
	HandlerType: (*BattleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("RunBattle", BattleServiceServer.RunBattle),
		unaryHandler("GetBattle", BattleServiceServer.GetBattle),
		unaryHandler("CreateBattlefield", BattleServiceServer.CreateBattlefield),
		unaryHandler("ListBattlefields", BattleServiceServer.ListBattlefields),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "skirmish/battle/v1/battle.proto",
}

// RegisterBattleServiceServer registers srv on s.
func RegisterBattleServiceServer(s grpc.ServiceRegistrar, srv BattleServiceServer) {
	s.RegisterService(&BattleServiceDesc, srv)
}

// BattleServiceClient calls a remote battle service.
type BattleServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBattleServiceClient creates a client over cc.
func NewBattleServiceClient(cc grpc.ClientConnInterface) *BattleServiceClient {
	return &BattleServiceClient{cc: cc}
}

func (c *BattleServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+BattleServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RunBattle runs a battle from an inline battlefield or a stored battlefield_id.
func (c *BattleServiceClient) RunBattle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "RunBattle", in, opts...)
}

// GetBattle fetches a finished battle by id.
func (c *BattleServiceClient) GetBattle(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetBattle", in, opts...)
}

// CreateBattlefield stores a named battlefield.
func (c *BattleServiceClient) CreateBattlefield(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "CreateBattlefield", in, opts...)
}

// ListBattlefields lists stored battlefields.
func (c *BattleServiceClient) ListBattlefields(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "ListBattlefields", in, opts...)
}
