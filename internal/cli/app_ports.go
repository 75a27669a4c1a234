package cli

import archivioapp "github.com/alexanderramin/archivio/internal/app"

func (a *App) scanUseCase() archivioapp.ScanNotificationsUseCase {
	if a.ScanNotifications != nil {
		return a.ScanNotifications
	}
	return a.Notifications
}

func (a *App) importSeedUseCase() archivioapp.ImportSeedUseCase {
	if a.ImportSeed != nil {
		return a.ImportSeed
	}
	return a.Import
}
