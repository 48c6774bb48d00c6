package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tu-usuario/catalogo-admin/internal/application/auth"
	"github.com/tu-usuario/catalogo-admin/internal/application/ports"
	"github.com/tu-usuario/catalogo-admin/internal/application/usecase"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/rest"
	"github.com/tu-usuario/catalogo-admin/internal/infrastructure/session"
	"github.com/tu-usuario/catalogo-admin/internal/interfaces/controller"
	"github.com/tu-usuario/catalogo-admin/pkg/config"
	"github.com/tu-usuario/catalogo-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando cliente")

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	store, err := session.NewStore(stateDir(home, cfg.State.Dir))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir el almacén de sesión")
	}

	api, err := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("construir el despachador REST")
	}

	router := controller.NewRouter()
	authUC := auth.New(api, store, router, log)
	categoryUC := usecase.NewCategoryUseCase(api, authUC)
	productUC := usecase.NewProductUseCase(api, authUC)

	ctx := context.Background()
	loginCtl := controller.NewLoginController(authUC, router)
	homeCtl := controller.NewHomeController(authUC, productUC, categoryUC, router)
	categoryCtl := controller.NewCategoryController(authUC, categoryUC, router)

	router.Handle(ports.RouteLogin, func() {
		if loginCtl.ErrorMessage != "" {
			fmt.Println("!", loginCtl.ErrorMessage)
		}
		fmt.Println("vista: login — use `login <usuario> <contraseña>`")
	})
	router.Handle(ports.RouteHome, func() {
		homeCtl.Activate(ctx)
		printProducts(homeCtl)
	})
	router.Handle(ports.RouteCategories, func() {
		categoryCtl.Activate(ctx)
		printCategories(categoryCtl)
	})

	router.Navigate(ports.RouteLogin)
	runShell(ctx, router, loginCtl, homeCtl, categoryCtl)

	log.Info().Msg("cliente detenido")
}

// stateDir resuelve el directorio de estado: relativo al home salvo que la
// configuración traiga una ruta absoluta.
func stateDir(home, dir string) string {
	if strings.HasPrefix(dir, "/") {
		return dir
	}
	return home + "/" + dir
}

// runShell intérprete de línea que traduce comandos a acciones de los
// controladores. Toda la lógica vive en los controladores; aquí solo se lee,
// despacha e imprime.
func runShell(ctx context.Context, router *controller.Router, loginCtl *controller.LoginController, homeCtl *controller.HomeController, categoryCtl *controller.CategoryController) {
	sc := bufio.NewScanner(os.Stdin)
	fmt.Println("comandos: login, products, categories, search, sort, delete, confirm, cancel, logout, quit")
	for {
		fmt.Printf("[%s]> ", router.Current())
		if !sc.Scan() {
			return
		}
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "login":
			loginCtl.Username, loginCtl.Password = "", ""
			if len(args) > 0 {
				loginCtl.Username = args[0]
			}
			if len(args) > 1 {
				loginCtl.Password = args[1]
			}
			loginCtl.Login(ctx)
			if loginCtl.ErrorMessage != "" {
				fmt.Println("!", loginCtl.ErrorMessage)
			}
		case "logout":
			switch router.Current() {
			case ports.RouteCategories:
				categoryCtl.Logout()
			default:
				homeCtl.Logout()
			}
		case "products":
			router.Navigate(ports.RouteHome)
		case "categories":
			router.Navigate(ports.RouteCategories)
		case "search":
			query := strings.Join(args, " ")
			if router.Current() == ports.RouteCategories {
				categoryCtl.OnSearch(query)
				printCategories(categoryCtl)
			} else {
				homeCtl.OnSearch(query)
				printProducts(homeCtl)
			}
		case "sort":
			if len(args) == 0 {
				fmt.Println("! falta el campo de ordenamiento")
				continue
			}
			if router.Current() == ports.RouteCategories {
				categoryCtl.SetSortField(args[0])
				printCategories(categoryCtl)
			} else {
				homeCtl.SetSortField(args[0])
				printProducts(homeCtl)
			}
		case "delete":
			if len(args) == 0 {
				fmt.Println("! falta el id")
				continue
			}
			id, _ := strconv.ParseInt(args[0], 10, 64)
			if router.Current() == ports.RouteCategories {
				for _, cat := range categoryCtl.Filtered {
					if cat.ID == id {
						categoryCtl.Delete(cat)
					}
				}
			} else {
				for _, p := range homeCtl.Filtered {
					if p.ID == id {
						homeCtl.Delete(p)
					}
				}
			}
			fmt.Println("confirme con `confirm` o aborte con `cancel`")
		case "confirm":
			if router.Current() == ports.RouteCategories {
				categoryCtl.ConfirmDelete(ctx)
				printBanners(categoryCtl.ErrorMessage, categoryCtl.SuccessMessage())
				printCategories(categoryCtl)
			} else {
				homeCtl.ConfirmDelete(ctx)
				printBanners(homeCtl.ErrorMessage, homeCtl.SuccessMessage())
				printProducts(homeCtl)
			}
		case "cancel":
			if router.Current() == ports.RouteCategories {
				categoryCtl.CancelDelete()
			} else {
				homeCtl.CancelDelete()
			}
		default:
			fmt.Println("! comando desconocido:", cmd)
		}
	}
}

func printBanners(errMsg, okMsg string) {
	if errMsg != "" {
		fmt.Println("!", errMsg)
	}
	if okMsg != "" {
		fmt.Println("✓", okMsg)
	}
}

func printProducts(c *controller.HomeController) {
	if c.ErrorMessage != "" {
		fmt.Println("!", c.ErrorMessage)
		return
	}
	fmt.Printf("productos (%d) — usuario: %s %s\n", len(c.Filtered), c.FirstName, c.LastName)
	for _, p := range c.Filtered {
		fmt.Printf("  %4d  %-24s  %10s  %-5t  %s\n", p.ID, p.Name, p.Price.StringFixed(2), p.Available, p.CategoryName())
	}
}

func printCategories(c *controller.CategoryController) {
	if c.ErrorMessage != "" {
		fmt.Println("!", c.ErrorMessage)
		return
	}
	fmt.Printf("categorías (%d) — usuario: %s %s\n", len(c.Filtered), c.FirstName, c.LastName)
	for _, cat := range c.Filtered {
		parent := cat.ParentCategory
		if parent == "" {
			parent = "-"
		}
		fmt.Printf("  %4d  %-24s  %-6t  padre: %s\n", cat.ID, cat.Name, cat.Active, parent)
	}
}
