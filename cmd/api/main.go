package main

import (
	"fmt"
	"net/http"

	"github.com/smpn1padarincang/presensi-backend-go/internal/config"
	appHTTP "github.com/smpn1padarincang/presensi-backend-go/internal/handler/http"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/cron"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/geo"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/jwt"
	"github.com/smpn1padarincang/presensi-backend-go/internal/pkg/sse"
	"github.com/smpn1padarincang/presensi-backend-go/internal/repository/localstate"
	"github.com/smpn1padarincang/presensi-backend-go/internal/repository/sheets"
	attendanceService "github.com/smpn1padarincang/presensi-backend-go/internal/service/attendance"
	authService "github.com/smpn1padarincang/presensi-backend-go/internal/service/auth"
	dashboardService "github.com/smpn1padarincang/presensi-backend-go/internal/service/dashboard"
	directoryService "github.com/smpn1padarincang/presensi-backend-go/internal/service/directory"
	leaveService "github.com/smpn1padarincang/presensi-backend-go/internal/service/leave"
	teachingService "github.com/smpn1padarincang/presensi-backend-go/internal/service/teaching"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	rules, err := cfg.Rules()
	if err != nil {
		fmt.Println("Error parsing schedule rules:", err)
		return
	}

	sheetsClient := sheets.NewClient(sheets.Config{
		DirectoryURL:         cfg.Sheets.DirectoryURL,
		FallbackDirectoryURL: cfg.Sheets.FallbackDirectoryURL,
		WebAppURL:            cfg.Sheets.WebAppURL,
		Timeout:              cfg.Sheets.Timeout,
	})

	stateStore, err := localstate.NewStore(cfg.State.Dir)
	if err != nil {
		fmt.Println("Error opening state directory:", err)
		return
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	fence := geo.Fence{
		Lat:          cfg.Geofence.Lat,
		Lng:          cfg.Geofence.Lng,
		RadiusMeters: cfg.Geofence.RadiusMeters,
	}

	dirService := directoryService.NewDirectoryService(sheetsClient)
	dashService := dashboardService.NewDashboardService(sheetsClient, dirService, hub)
	attService := attendanceService.NewAttendanceService(stateStore, sheetsClient, fence, rules)
	auService := authService.NewAuthService(dirService, JWTService, stateStore)
	teaService := teachingService.NewTeachingService(sheetsClient)
	leaService := leaveService.NewLeaveService(sheetsClient)

	authHandler := appHTTP.NewAuthHandler(auService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attService)
	teachingHandler := appHTTP.NewTeachingHandler(teaService)
	leaveHandler := appHTTP.NewLeaveHandler(leaService)
	dashboardHandler := appHTTP.NewDashboardHandler(dashService, JWTService, hub)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("directory-refresh", cfg.Refresh.Directory, dirService.Refresh)
	scheduler.AddJob("dashboard-refresh", cfg.Refresh.Dashboard, dashService.Refresh)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		authHandler,
		attendanceHandler,
		teachingHandler,
		leaveHandler,
		dashboardHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
