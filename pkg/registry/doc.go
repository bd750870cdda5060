// Package registry provides an HTTP client for a Thunderstore-style package
// registry.
//
// # Overview
//
// The registry exposes two endpoints used by tstore:
//
//   - GET {base}/experimental/package/{author}/{name}/ returns a [Package]
//   - POST {base}/experimental/package/upload/ accepts a multipart upload
//
// [Client.FetchPackage] maps a non-200 response to a
// PACKAGE_NOT_FOUND error without reading the body as metadata, and maps a
// 200 response whose body does not match the expected schema to a
// PARSE_ERROR. [Client.Upload] returns the registry's response body verbatim
// inside an [errors.RejectedError] when the upload is refused.
//
// # Client Pattern
//
//	client := registry.NewClient(registry.BaseURL(""))
//	pkg, err := client.FetchPackage(ctx, "BepInEx", "BepInExPack")
//
// The client performs no retries, no caching and imposes no timeout of its
// own; cancellation comes from the context.
//
// [errors.RejectedError]: github.com/matzehuels/tstore/pkg/errors.RejectedError
package registry
