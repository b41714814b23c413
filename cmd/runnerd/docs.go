package main

// General API documentation for swaggo. Regenerate with
// `swag init -g cmd/runnerd/docs.go -o docs`.
//
// @title           runnerd API
// @version         1.0
// @description     HTTP API for model memory accounting, tiered result caching and stream session bookkeeping.
//
// @contact.name   runnerd maintainers
// @contact.url    https://github.com/your-org/runnerd
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
