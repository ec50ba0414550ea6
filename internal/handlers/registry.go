package handlers

// AppHandlers groups the route-owning handlers for registration at startup.
type AppHandlers struct {
	AuthHandler   *AuthHandler
	AdminHandler  *AdminHandler
	HealthHandler *HealthHandler
}
