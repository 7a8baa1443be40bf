package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	UserHandler        *UserHandler
	JobHandler         *JobHandler
	ApplicationHandler *ApplicationHandler
	WalletHandler      *WalletHandler
	ChatHandler        *ChatHandler
	SettingsHandler    *SettingsHandler
}
