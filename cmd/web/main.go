// @title           MicroJob API
// @version         1.0
// @description     API биржи микрозадач: вакансии, отклики, кошелек, выводы средств.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "microjob_backend/internal/app"

func main() {
	app.Run()
}
