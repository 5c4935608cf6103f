// Command artfolio runs a portfolio site configured from the environment.
package main

import (
	"log"

	"github.com/eringen/artfolio"
)

func main() {
	app := artfolio.New(artfolio.SiteConfig{
		Name:            artfolio.EnvOr("SITE_NAME", "Portfolio"),
		URL:             artfolio.EnvOr("SITE_URL", "http://localhost:3000"),
		Addr:            artfolio.EnvOr("LISTEN_ADDR", ":3000"),
		DatabasePath:    artfolio.EnvOr("DATABASE_PATH", "data/portfolio.db"),
		AdminPassphrase: artfolio.MustEnv("ADMIN_PASSPHRASE"),
		SessionSecret:   artfolio.MustEnv("SESSION_SECRET"),
		CookieSecure:    artfolio.EnvOr("COOKIE_SECURE", "") == "true",
	}, artfolio.WithStaticDir(artfolio.EnvOr("STATIC_DIR", "public")))
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
