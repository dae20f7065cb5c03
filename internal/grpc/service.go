package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified name MusicService is registered under.
const ServiceName = "music.v1.MusicService"

const (
	resolveMethod   = "/" + ServiceName + "/Resolve"
	searchMethod    = "/" + ServiceName + "/Search"
	extensionMethod = "/" + ServiceName + "/Extension"
	downloadMethod  = "/" + ServiceName + "/Download"
	fetchMethod     = "/" + ServiceName + "/Fetch"
)

// MusicServiceServer is the server API for MusicService.
type MusicServiceServer interface {
	Resolve(context.Context, *ResolveRequest) (*ResolveResponse, error)
	Search(context.Context, *SearchRequest) (*SearchResponse, error)
	Extension(context.Context, *ExtensionRequest) (*ExtensionResponse, error)
	Download(*DownloadRequest, grpc.ServerStreamingServer[ProgressEvent]) error
	Fetch(*FetchRequest, grpc.ServerStreamingServer[ProgressEvent]) error
}

// RegisterMusicServiceServer registers srv on s.
func RegisterMusicServiceServer(s grpc.ServiceRegistrar, srv MusicServiceServer) {
	s.RegisterService(&MusicServiceDesc, srv)
}

// MusicServiceDesc describes MusicService for grpc.Server.
var MusicServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MusicServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Resolve", Handler: resolveHandler},
		{MethodName: "Search", Handler: searchHandler},
		{MethodName: "Extension", Handler: extensionHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Download", Handler: downloadHandler, ServerStreams: true},
		{StreamName: "Fetch", Handler: fetchHandler, ServerStreams: true},
	},
	Metadata: "music/v1/music.json",
}

// unaryHandler adapts a typed unary method to grpc.MethodHandler.
func unaryHandler[Req, Res any](fullMethod string, call func(MusicServiceServer, context.Context, *Req) (*Res, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MusicServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MusicServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// streamHandler adapts a typed server-streaming method to grpc.StreamHandler.
func streamHandler[Req any](call func(MusicServiceServer, *Req, grpc.ServerStreamingServer[ProgressEvent]) error) grpc.StreamHandler {
	return func(srv any, stream grpc.ServerStream) error {
		in := new(Req)
		if err := stream.RecvMsg(in); err != nil {
			return err
		}
		return call(srv.(MusicServiceServer), in, &grpc.GenericServerStream[Req, ProgressEvent]{ServerStream: stream})
	}
}

var (
	resolveHandler   = unaryHandler(resolveMethod, MusicServiceServer.Resolve)
	searchHandler    = unaryHandler(searchMethod, MusicServiceServer.Search)
	extensionHandler = unaryHandler(extensionMethod, MusicServiceServer.Extension)
	downloadHandler  = streamHandler(MusicServiceServer.Download)
	fetchHandler     = streamHandler(MusicServiceServer.Fetch)
)

// MusicServiceClient is the client API for MusicService. Every call is sent
// with the json content-subtype.
type MusicServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewMusicServiceClient creates a client over cc.
func NewMusicServiceClient(cc grpc.ClientConnInterface) *MusicServiceClient {
	return &MusicServiceClient{cc: cc}
}

func (c *MusicServiceClient) Resolve(ctx context.Context, in *ResolveRequest, opts ...grpc.CallOption) (*ResolveResponse, error) {
	out := new(ResolveResponse)
	if err := c.cc.Invoke(ctx, resolveMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MusicServiceClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*SearchResponse, error) {
	out := new(SearchResponse)
	if err := c.cc.Invoke(ctx, searchMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MusicServiceClient) Extension(ctx context.Context, in *ExtensionRequest, opts ...grpc.CallOption) (*ExtensionResponse, error) {
	out := new(ExtensionResponse)
	if err := c.cc.Invoke(ctx, extensionMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MusicServiceClient) Download(ctx context.Context, in *DownloadRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ProgressEvent], error) {
	return openProgressStream(ctx, c.cc, &MusicServiceDesc.Streams[0], downloadMethod, in, opts)
}

func (c *MusicServiceClient) Fetch(ctx context.Context, in *FetchRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ProgressEvent], error) {
	return openProgressStream(ctx, c.cc, &MusicServiceDesc.Streams[1], fetchMethod, in, opts)
}

func openProgressStream[Req any](ctx context.Context, cc grpc.ClientConnInterface, desc *grpc.StreamDesc, method string, in *Req, opts []grpc.CallOption) (grpc.ServerStreamingClient[ProgressEvent], error) {
	stream, err := cc.NewStream(ctx, desc, method, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[Req, ProgressEvent]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}
