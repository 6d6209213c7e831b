// Package types provides shared data structures for the Stars MCP server.
//
// This package defines core types used across all components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Result: Standard tool/operation result envelope
//   - Service, Tool, Parameter: Service catalog metadata
//   - ContributionType, PlatformType: Upstream enum values
//   - ContributionInput, LinkInput, ProfileInput: Mutation payloads
//
// Example Usage:
//
//	res := types.Success(map[string]interface{}{"id": "c_123"})
//	if !res.Success {
//	    log.Println(*res.Error)
//	}
package types
