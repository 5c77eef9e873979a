package main

import (
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/rm-hull/medevents-gateway/cmd"
	"github.com/rm-hull/medevents-gateway/internal/models"
)

func main() {
	var dbPath string
	var port int
	var debug bool
	var username string
	var password string
	var fullname string

	rootCmd := &cobra.Command{
		Use:           "medevents",
		Short:         "Gateway to the medical events backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "data/medevents.db", "Path to sqlite database holding tokens and snapshots")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--debug]",
		Short: "Start HTTP API server serving cached snapshots",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.ApiServer(dbPath, port, debug)
		},
	}
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch events and hospitals from the backend into the snapshot store",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Sync(dbPath)
		},
	}

	passwordOrEnv := func() string {
		if password != "" {
			return password
		}
		return os.Getenv("MEDEVENTS_PASSWORD")
	}

	loginCmd := &cobra.Command{
		Use:   "login --username <username> [--password <password>]",
		Short: "Authenticate and store the session tokens",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Login(dbPath, username, passwordOrEnv())
		},
	}
	loginCmd.Flags().StringVar(&username, "username", "", "Username")
	loginCmd.Flags().StringVar(&password, "password", "", "Password (defaults to $MEDEVENTS_PASSWORD)")
	_ = loginCmd.MarkFlagRequired("username")

	registerCmd := &cobra.Command{
		Use:   "register --username <username> --fullname <name> [--password <password>]",
		Short: "Create a new account",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Register(dbPath, models.RegisterRequest{
				Username: username,
				Password: passwordOrEnv(),
				Fullname: fullname,
			})
		},
	}
	registerCmd.Flags().StringVar(&username, "username", "", "Username")
	registerCmd.Flags().StringVar(&password, "password", "", "Password (defaults to $MEDEVENTS_PASSWORD)")
	registerCmd.Flags().StringVar(&fullname, "fullname", "", "Full name")
	_ = registerCmd.MarkFlagRequired("username")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and clear stored tokens",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Logout(dbPath)
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.WhoAmI(dbPath)
		},
	}

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check whether the backend is reachable",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Health(dbPath)
		},
	}

	eventsCmd := &cobra.Command{
		Use:   "events [id]",
		Short: "List events, or show a single event",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				return cmd.GetEvent(dbPath, args[0])
			}
			return cmd.ListEvents(dbPath)
		},
	}
	eventsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.DeleteEvent(dbPath, args[0])
		},
	})
	eventsCmd.AddCommand(&cobra.Command{
		Use:   "participants <event-id>",
		Short: "List participants of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.ListParticipants(dbPath, args[0])
		},
	})
	eventsCmd.AddCommand(&cobra.Command{
		Use:   "medical-staff <event-id>",
		Short: "List medical staff assigned to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.ListMedicalStaff(dbPath, args[0])
		},
	})
	eventsCmd.AddCommand(&cobra.Command{
		Use:   "checkup <event-id> <user-id>",
		Short: "Show the medical status of a participant",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.GetCheckup(dbPath, args[0], args[1])
		},
	})

	hospitalsCmd := &cobra.Command{
		Use:   "hospitals [id]",
		Short: "List hospitals, or show a single hospital",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				return cmd.GetHospital(dbPath, args[0])
			}
			return cmd.ListHospitals(dbPath)
		},
	}
	hospitalsCmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a hospital",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.DeleteHospital(dbPath, args[0])
		},
	})
	hospitalsCmd.AddCommand(&cobra.Command{
		Use:   "staff <hospital-id>",
		Short: "List staff of a hospital",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.ListHospitalStaff(dbPath, args[0])
		},
	})

	rootCmd.AddCommand(
		apiServerCmd,
		syncCmd,
		loginCmd,
		registerCmd,
		logoutCmd,
		whoamiCmd,
		healthCmd,
		eventsCmd,
		hospitalsCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
