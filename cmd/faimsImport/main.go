package main

import (
	"bitbucket.org/airenas/faimsgo/internal/app/importer"
	"github.com/labstack/gommon/color"
)

func main() {
	printBanner()
	importer.Execute()
}

var (
	version string
)

func printBanner() {
	banner := `
    ____      _
   / __/___ _(_)___ ___  _____
  / /_/ __ ` + "`" + `/ / __ ` + "`" + `__ \/ ___/
 / __/ /_/ / / / / / / (__  )
/_/  \__,_/_/_/ /_/ /_/____/
              __        ___    __
             / /_____  / _ |  / /  _____ ___
            / __/ __ \ / __ | / /  / // -_) _ \
            \__/\____//_/ |_|/_/   \_/\__/\___/ v: %s
%s
________________________________________________________

`
	cl := color.New()
	cl.Printf(banner, cl.Red(version), cl.Green("bitbucket.org/airenas/faimsgo"))
}
