// Package config loads runtime settings from an optional YAML file and
// WEBVIEW2_* environment variables. Environment values win.
//
//	runtime: headless
//	language: en-US
//	user_data_folder: /tmp/profile
//	timeout: 10s
//	log_level: debug
package config
