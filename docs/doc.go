// Package docs provides generated OpenAPI documentation.
//
// Leaf API
//
//	@title			Leaf API
//	@version		1.0
//	@description	Screen-at-a-time document viewer API: navigation, layout, render metrics and settings.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/leaf
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/leaf/serve.go -o . --parseDependency --parseInternal
