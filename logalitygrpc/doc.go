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

// Package logalitygrpc provides gRPC interceptors that log one record per
// RPC through a logality.Logger.
//
// Unary server and client interceptors attach a request-scoped bound logger
// to the RPC context and emit a completion record with service, method,
// status code, duration, and peer address under the "custom" bag key, the
// active span context under "trace", and the RPC error (if any) under
// "error". Severity follows the status code: OK logs at info, client-fault
// codes at warn, and server-fault codes at error. Panicking handlers
// produce a critical record and a codes.Internal response.
//
// [ServerOptions] and [DialOptions] bundle the interceptors with otelgrpc
// stats handlers so spans exist before records are assembled:
//
//	server := grpc.NewServer(logalitygrpc.ServerOptions(logger)...)
//
//	conn, err := grpc.NewClient(target, append(
//	    []grpc.DialOption{grpc.WithTransportCredentials(creds)},
//	    logalitygrpc.DialOptions(logger)...,
//	)...)
//
// Payload logging is opt-in via [WithPayloads]; proto messages render
// through protojson and are truncated beyond the configured byte limit.
package logalitygrpc
