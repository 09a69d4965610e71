package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sghaida/dilab/di"
	"github.com/sghaida/dilab/examples/hello"
	"github.com/sghaida/dilab/examples/notification"
	"github.com/sghaida/dilab/examples/order"
	"github.com/sghaida/dilab/examples/user"
	"github.com/sghaida/dilab/logging"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const propOrderDefinitions = "order.definitions"

func (a *app) orderCommand() *cobra.Command {
	var definitionsPath string
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Wire the order graph and print the cart total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := definitionsPath
			if path == "" {
				var err error
				if path, err = di.StringProperty(a.props, propOrderDefinitions, ""); err != nil {
					return err
				}
			}

			defs, err := loadDefinitions(path)
			if err != nil {
				return err
			}
			g, err := order.Wire(defs, order.WithLogger(a.log))
			if err != nil {
				return err
			}

			cart := di.MustRefOf[order.ShoppingCart](g.OrderService, order.KeyShoppingCart)
			for _, p := range cart.Products() {
				fmt.Fprintf(a.stdout, "%s\t%s\t%s\n", p.ID, p.Name, humanize.Commaf(p.Price))
			}
			fmt.Fprintf(a.stdout, "total\t%s\n", humanize.Commaf(g.OrderService.Value().CalculateOrderTotal()))
			return nil
		},
	}
	cmd.Flags().StringVar(&definitionsPath, "definitions", "", "order definitions YAML (embedded lab definitions by default)")
	return cmd
}

func loadDefinitions(path string) (order.Definitions, error) {
	if path == "" {
		return order.DefaultDefinitions()
	}
	return order.LoadDefinitionsFile(path)
}

func (a *app) notifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send a message through one notification channel",
	}

	send := func(channel string, dispatch func(*notification.NotificationManager, string)) *cobra.Command {
		return &cobra.Command{
			Use:   channel + " MESSAGE",
			Short: "Send MESSAGE by " + channel,
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				cfg, err := notification.ConfigFromProperties(a.props)
				if err != nil {
					return err
				}
				mgr, err := notification.NewManagerFromConfig(cfg,
					notification.WithOutput(a.stdout),
					notification.WithLogger(a.log),
				)
				if err != nil {
					return err
				}
				dispatch(mgr, args[0])
				return nil
			},
		}
	}

	cmd.AddCommand(
		send("email", (*notification.NotificationManager).SendByEmail),
		send("sms", (*notification.NotificationManager).SendBySms),
	)
	return cmd
}

func (a *app) userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User registration lab",
	}
	var generateID bool
	register := &cobra.Command{
		Use:   "register [ID] NAME SECRET",
		Short: "Register a user through the fx wired UserService",
		Args: func(cmd *cobra.Command, args []string) error {
			if generateID {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if generateID {
				args = append([]string{uuid.NewString()}, args...)
			}

			var svc *user.UserService
			fxApp := fx.New(
				fx.WithLogger(func() fxevent.Logger { return logging.NewEventLogger(a.log) }),
				user.Module,
				fx.Provide(
					func() di.PropertySource { return a.props },
					func() *zap.Logger { return a.log },
					fx.Annotate(
						func() io.Writer { return a.stdout },
						fx.ResultTags(`name:"`+user.OutputName+`"`),
					),
				),
				fx.Populate(&svc),
			)
			if err := fxApp.Start(cmd.Context()); err != nil {
				return err
			}
			defer func() { _ = fxApp.Stop(cmd.Context()) }()

			ok := svc.RegisterUser(args[0], args[1], args[2])
			fmt.Fprintf(a.stdout, "registered: %t\n", ok)
			return nil
		},
	}
	register.Flags().BoolVar(&generateID, "generate-id", false, "generate a random ID instead of taking one")
	cmd.AddCommand(register)
	return cmd
}

func (a *app) helloCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Print the configured greeting",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			h, err := hello.NewConfiguredHello(a.props)
			if err != nil {
				return err
			}
			h.SetPrinter(hello.NewConsolePrinter(a.stdout))
			h.Print()
			fmt.Fprintf(a.stdout, "names: %s\n", strings.Join(h.Names(), ", "))
			return nil
		},
	}
}
