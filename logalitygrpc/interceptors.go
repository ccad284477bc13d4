// Copyright 2026 The Logality Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logalitygrpc

import (
	"context"
	"fmt"
	"net"
	"path"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/logality/logality"
)

// UnaryServerInterceptor logs one completion record per unary RPC handled by
// the server and places a request-scoped bound logger into the RPC context.
func UnaryServerInterceptor(logger *logality.Logger, opts ...Option) grpc.UnaryServerInterceptor {
	cfg := applyOptions(opts)
	bound := logger.BindLocation("logalitygrpc/interceptors.go")

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		ctx = logality.ContextWithLogger(ctx, bound)

		defer func() {
			if p := recover(); p != nil {
				logServerPanic(bound, ctx, info.FullMethod, p)
				resp, err = nil, status.Error(codes.Internal, "internal server error")
			}
			logCompletion(cfg, bound, ctx, info.FullMethod, false, req, resp, err, time.Since(start))
		}()

		resp, err = handler(ctx, req)
		return resp, err
	}
}

// UnaryClientInterceptor logs one completion record per outgoing unary RPC.
func UnaryClientInterceptor(logger *logality.Logger, opts ...Option) grpc.UnaryClientInterceptor {
	cfg := applyOptions(opts)
	bound := logger.BindLocation("logalitygrpc/interceptors.go")

	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, callOpts ...grpc.CallOption) error {
		start := time.Now()
		ctx = logality.ContextWithLogger(ctx, bound)

		err := invoker(ctx, method, req, reply, cc, callOpts...)
		logCompletion(cfg, bound, ctx, method, true, req, reply, err, time.Since(start))
		return err
	}
}

// ServerOptions bundles otelgrpc stats handlers with the server interceptor.
func ServerOptions(logger *logality.Logger, opts ...Option) []grpc.ServerOption {
	cfg := applyOptions(opts)
	var serverOpts []grpc.ServerOption
	if cfg.enableOTel {
		serverOpts = append(serverOpts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}
	serverOpts = append(serverOpts, grpc.ChainUnaryInterceptor(UnaryServerInterceptor(logger, opts...)))
	return serverOpts
}

// DialOptions bundles otelgrpc stats handlers with the client interceptor.
func DialOptions(logger *logality.Logger, opts ...Option) []grpc.DialOption {
	cfg := applyOptions(opts)
	var dialOpts []grpc.DialOption
	if cfg.enableOTel {
		dialOpts = append(dialOpts, grpc.WithStatsHandler(otelgrpc.NewClientHandler()))
	}
	dialOpts = append(dialOpts, grpc.WithChainUnaryInterceptor(UnaryClientInterceptor(logger, opts...)))
	return dialOpts
}

// logCompletion emits the per-RPC record.
func logCompletion(cfg *config, bound *logality.BoundLogger, ctx context.Context, fullMethod string, client bool, req, resp any, err error, duration time.Duration) {
	service, method := splitMethodName(fullMethod)
	code := status.Code(err)

	custom := map[string]any{
		"grpc_service": service,
		"grpc_method":  method,
		"grpc_code":    code.String(),
		"duration_ms":  duration.Milliseconds(),
	}
	if client {
		custom["direction"] = "client"
	} else {
		custom["direction"] = "server"
		if cfg.includePeer {
			if addr, ok := peerAddress(ctx); ok {
				custom["peer_address"] = addr
			}
		}
	}
	if cfg.payloadLimit > 0 {
		custom["request_payload"] = renderPayload(req, cfg.payloadLimit)
		if err == nil {
			custom["response_payload"] = renderPayload(resp, cfg.payloadLimit)
		}
	}

	bag := logality.Bag{logality.KeyCustom: custom}
	for key, value := range logality.TraceBag(ctx) {
		bag[key] = value
	}
	if err != nil {
		bag[logality.KeyError] = err
	}

	msg := fmt.Sprintf("grpc %s/%s -> %s", service, method, code)
	bound.Log(severityForCode(code), msg, bag)
}

// logServerPanic emits a critical record for a panicking handler.
func logServerPanic(bound *logality.BoundLogger, ctx context.Context, fullMethod string, p any) {
	service, method := splitMethodName(fullMethod)
	bag := logality.Bag{
		logality.KeyError: fmt.Errorf("panic: %v", p),
		logality.KeyCustom: map[string]any{
			"grpc_service": service,
			"grpc_method":  method,
		},
	}
	for key, value := range logality.TraceBag(ctx) {
		bag[key] = value
	}
	bound.Critical("recovered panic during gRPC call", bag)
}

// severityForCode maps a gRPC status code to a record severity: OK is info,
// caller-fault codes are warn, server-fault codes are error.
func severityForCode(code codes.Code) logality.Severity {
	switch code {
	case codes.OK:
		return logality.SeverityInfo
	case codes.Canceled,
		codes.InvalidArgument,
		codes.NotFound,
		codes.AlreadyExists,
		codes.PermissionDenied,
		codes.ResourceExhausted,
		codes.FailedPrecondition,
		codes.Aborted,
		codes.OutOfRange,
		codes.Unauthenticated:
		return logality.SeverityWarn
	default:
		return logality.SeverityError
	}
}

// splitMethodName parses "/package.Service/Method" into its service and
// method components, tolerating a missing leading slash or service part.
func splitMethodName(fullMethod string) (service, method string) {
	fullMethod = strings.TrimPrefix(fullMethod, "/")
	service = path.Dir(fullMethod)
	method = path.Base(fullMethod)
	if service == "." || service == "" {
		service = "unknown"
	}
	return service, method
}

// peerAddress extracts the remote host of the RPC peer, stripping the port
// when present.
func peerAddress(ctx context.Context) (string, bool) {
	pr, ok := peer.FromContext(ctx)
	if !ok || pr == nil || pr.Addr == nil {
		return "", false
	}
	addr := pr.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host, true
	}
	return addr, true
}
