// Package config loads the issuetop configuration from
// ~/.config/issuetop/config.toml.
//
// Everything has a sensible default; the file is optional and a missing
// file is not an error. Loading fails only when a file exists but cannot
// be parsed or holds invalid values.
//
// # Example
//
//	# default server-side state filter: all, open or closed
//	state = "all"
//
//	# local rows per page: 10, 25 or 50
//	page_size = 25
//
//	# server sort: created, updated or comments; asc or desc
//	sort = "created"
//	direction = "desc"
//
//	# environment variable holding the API token
//	token_env = "GITHUB_TOKEN"
//
//	# default column visibility
//	[columns]
//	labels = true
//	comments = true
//	updated = false
package config
