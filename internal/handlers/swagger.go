package handlers

// @title Storefront API
// @version 1.0
// @description Admin session, order history and image proxy endpoints for the storefront
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name admin_session
// @description Opaque session token set by /api/login.

// @tag.name auth
// @tag.description Admin login and logout

// @tag.name orders
// @tag.description Customer order history

// @tag.name images
// @tag.description Product and page image proxy
