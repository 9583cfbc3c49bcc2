// Copyright 2025 The HederaMarketPlace Authors
// This file is part of hederamarket.
//
// hederamarket is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hederamarket is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hederamarket. If not, see <http://www.gnu.org/licenses/>.

// marketd boots the marketplace client service.
//
// It connects to an EVM JSON-RPC node (Hedera's relay included), binds the
// deployed MarketPlace contract, and serves the client's route surface over
// HTTP. Read-only subcommands inspect the contract without a wallet.
//
// Usage:
//   marketd --rpc <endpoint> --contract <address> --keystore <dir> [--listen :8560]
package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/cmd/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	homedir "github.com/mitchellh/go-homedir"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/sumitbawane/HederaMarketPlace/contracts/marketplace"
	"github.com/sumitbawane/HederaMarketPlace/market"
	"github.com/sumitbawane/HederaMarketPlace/pinning"
	"github.com/sumitbawane/HederaMarketPlace/web"
)

var (
	app = cli.NewApp()

	// Flags
	rpcFlag = cli.StringFlag{
		Name:  "rpc",
		Usage: "EVM JSON-RPC endpoint (e.g. https://testnet.hashio.io/api)",
		Value: "http://localhost:8545",
	}
	contractFlag = cli.StringFlag{
		Name:  "contract",
		Usage: "Deployed MarketPlace contract address",
	}
	keystoreFlag = cli.StringFlag{
		Name:  "keystore",
		Usage: "Directory holding the wallet keystore (default: ~/.hederamarket/keystore)",
	}
	passphraseFlag = cli.StringFlag{
		Name:   "passphrase",
		Usage:  "Keystore passphrase",
		EnvVar: "MARKETD_PASSPHRASE",
	}
	chainIDFlag = cli.Int64Flag{
		Name:  "chainid",
		Usage: "Chain ID for transaction signing (default: 296 = Hedera testnet)",
		Value: 296,
	}
	pinataKeyFlag = cli.StringFlag{
		Name:   "pinata-key",
		Usage:  "Pinata API key for image pinning",
		EnvVar: "PINATA_API_KEY",
	}
	pinataSecretFlag = cli.StringFlag{
		Name:   "pinata-secret",
		Usage:  "Pinata secret API key",
		EnvVar: "PINATA_SECRET_KEY",
	}
	listenFlag = cli.StringFlag{
		Name:  "listen",
		Usage: "HTTP listen address for the client API",
		Value: ":8560",
	}
	devFlag = cli.BoolFlag{
		Name:  "dev",
		Usage: "Run against an in-memory marketplace instead of a node",
	}

	// nodeFlags are what read-only subcommands need; walletFlags add the
	// keystore for transacting ones.
	nodeFlags   = []cli.Flag{rpcFlag, contractFlag}
	walletFlags = []cli.Flag{rpcFlag, contractFlag, keystoreFlag, passphraseFlag, chainIDFlag}
)

func init() {
	app.Name = "marketd"
	app.Usage = "Decentralized marketplace client service"
	app.Version = "0.1.0"
	app.Action = serve
	app.Flags = []cli.Flag{
		rpcFlag,
		contractFlag,
		keystoreFlag,
		passphraseFlag,
		chainIDFlag,
		pinataKeyFlag,
		pinataSecretFlag,
		listenFlag,
		devFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "Print contract owner and ledger sizes",
			Action: infoCmd,
			Flags:  nodeFlags,
		},
		{
			Name:   "browse",
			Usage:  "Print the product catalog",
			Action: browseCmd,
			Flags:  nodeFlags,
		},
		{
			Name:   "register",
			Usage:  "Register the wallet account as a marketplace user",
			Action: registerCmd,
			Flags:  walletFlags,
		},
		{
			Name:      "list",
			Usage:     "List a product for sale (seller-only)",
			ArgsUsage: "<name> <price> <imageUrl>",
			Action:    listCmd,
			Flags:     walletFlags,
		},
		{
			Name:      "buy",
			Usage:     "Buy a product by id",
			ArgsUsage: "<id>",
			Action:    buyCmd,
			Flags:     walletFlags,
		},
		{
			Name:   "requests",
			Usage:  "Print pending seller and admin role requests",
			Action: requestsCmd,
			Flags:  nodeFlags,
		},
		{
			Name:   "transactions",
			Usage:  "Print the wallet account's ledger activity",
			Action: transactionsCmd,
			Flags:  walletFlags,
		},
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging() {
	log.Root().SetHandler(log.LvlFilterHandler(log.LvlInfo, log.StreamHandler(os.Stderr, log.TerminalFormat(true))))
}

// keystoreDir resolves the keystore directory flag, defaulting under $HOME.
func keystoreDir(ctx *cli.Context) string {
	if dir := ctx.String("keystore"); dir != "" {
		return dir
	}
	home, err := homedir.Dir()
	if err != nil {
		utils.Fatalf("Cannot resolve home directory: %v", err)
	}
	return home + "/.hederamarket/keystore"
}

// openGateway dials the node and binds the contract through the wallet's
// signing options. In dev mode it returns an in-memory marketplace owned
// by the wallet account instead.
func openGateway(ctx *cli.Context, wallet *market.WalletSession) (market.Gateway, error) {
	account, _ := wallet.Account()
	if ctx.Bool("dev") {
		gw := market.NewMemoryGateway(account)
		gw.SetAccount(account)
		log.Warn("Running in dev mode, state is in-memory only")
		return gw, nil
	}

	if !ctx.IsSet("contract") {
		utils.Fatalf("--contract flag is required")
	}
	client, err := ethclient.Dial(ctx.String("rpc"))
	if err != nil {
		return nil, fmt.Errorf("connecting to node: %v", err)
	}
	opts, err := wallet.TransactOpts()
	if err != nil {
		return nil, err
	}
	mkt, err := marketplace.NewMarketPlace(opts, common.HexToAddress(ctx.String("contract")), client)
	if err != nil {
		return nil, fmt.Errorf("binding contract: %v", err)
	}
	return market.NewEthereumGateway(mkt, client), nil
}

// openService builds the full workflow stack for a transacting command:
// unlocked wallet, bound gateway, optional pinning client.
func openService(ctx *cli.Context) *market.Service {
	ks := keystore.NewKeyStore(keystoreDir(ctx), keystore.StandardScryptN, keystore.StandardScryptP)
	wallet := market.NewWalletSession(ks, big.NewInt(ctx.Int64("chainid")))
	if _, err := wallet.Connect(ctx.String("passphrase")); err != nil {
		utils.Fatalf("Wallet connection failed: %v", err)
	}

	gw, err := openGateway(ctx, wallet)
	if err != nil {
		utils.Fatalf("Gateway setup failed: %v", err)
	}

	var pinner market.AssetPinner
	if key := ctx.String("pinata-key"); key != "" {
		pinner = pinning.NewClient(pinning.Config{
			APIKey:    key,
			SecretKey: ctx.String("pinata-secret"),
		})
	}
	return market.NewService(gw, wallet, pinner)
}

func serve(ctx *cli.Context) error {
	setupLogging()

	svc := openService(ctx)
	defer svc.Close()

	account, _ := svc.Account()
	log.Info("Marketplace client starting",
		"rpc", ctx.String("rpc"),
		"contract", ctx.String("contract"),
		"account", account.Hex(),
		"listen", ctx.String("listen"),
	)

	return http.ListenAndServe(ctx.String("listen"), web.NewServer(svc))
}

func registerCmd(ctx *cli.Context) error {
	setupLogging()
	svc := openService(ctx)
	defer svc.Close()

	addr, _, err := svc.Login.Connect(ctx.String("passphrase"))
	if err != nil {
		return err
	}
	if err := svc.Login.Register(context.Background()); err != nil {
		if errors.Is(err, market.ErrAlreadyRegistered) {
			log.Info("Account already registered", "address", addr.Hex())
			return nil
		}
		return err
	}
	log.Info("Account registered", "address", addr.Hex())
	return nil
}

func listCmd(ctx *cli.Context) error {
	setupLogging()
	args := ctx.Args()
	if len(args) != 3 {
		utils.Fatalf("Usage: marketd list <name> <price> <imageUrl>")
	}
	svc := openService(ctx)
	defer svc.Close()

	return svc.Catalog.List(context.Background(), &market.ListingInput{
		Name:     args[0],
		Price:    args[1],
		ImageURL: args[2],
	})
}

func buyCmd(ctx *cli.Context) error {
	setupLogging()
	id, err := strconv.ParseUint(ctx.Args().First(), 10, 64)
	if err != nil {
		utils.Fatalf("Usage: marketd buy <id>")
	}
	svc := openService(ctx)
	defer svc.Close()

	return svc.Catalog.Buy(context.Background(), id)
}

func requestsCmd(ctx *cli.Context) error {
	setupLogging()
	gw := readOnlyGateway(ctx)

	sellers, err := market.NewSellerRequestQueue(gw).Pending()
	if err != nil {
		return err
	}
	admins, err := market.NewAdminRequestQueue(gw).Pending()
	if err != nil {
		return err
	}
	for _, req := range sellers {
		fmt.Printf("seller #%d  %s  %s\n", req.ID, req.Applicant.Hex(), req.Status)
	}
	for _, req := range admins {
		fmt.Printf("admin  #%d  %s  %s\n", req.ID, req.Applicant.Hex(), req.Status)
	}
	return nil
}

func transactionsCmd(ctx *cli.Context) error {
	setupLogging()
	svc := openService(ctx)
	defer svc.Close()

	activity, err := svc.Activity()
	if err != nil {
		return err
	}
	for _, row := range activity.Sales {
		fmt.Printf("sale      #%d  product %d  %s HBAR  [%s]\n", row.ID, row.ProductID, row.Price, row.ProductStatus)
	}
	for _, row := range activity.Purchases {
		fmt.Printf("purchase  #%d  product %d  %s HBAR  [%s]\n", row.ID, row.ProductID, row.Price, row.ProductStatus)
	}
	return nil
}

// readOnlyGateway binds the contract without a wallet for inspection
// subcommands; write methods must not be called through it.
func readOnlyGateway(ctx *cli.Context) market.Gateway {
	if !ctx.IsSet("contract") {
		utils.Fatalf("--contract flag is required")
	}
	client, err := ethclient.Dial(ctx.String("rpc"))
	if err != nil {
		utils.Fatalf("Connecting to node failed: %v", err)
	}
	mkt, err := marketplace.NewMarketPlace(nil, common.HexToAddress(ctx.String("contract")), client)
	if err != nil {
		utils.Fatalf("Binding contract failed: %v", err)
	}
	return market.NewEthereumGateway(mkt, client)
}

func infoCmd(ctx *cli.Context) error {
	setupLogging()
	gw := readOnlyGateway(ctx)

	owner, err := gw.Owner()
	if err != nil {
		return err
	}
	products, err := gw.ProductCount()
	if err != nil {
		return err
	}
	sellers, err := gw.SellerRequestCount()
	if err != nil {
		return err
	}
	admins, err := gw.AdminRequestCount()
	if err != nil {
		return err
	}
	ledger, err := gw.TransactionCount()
	if err != nil {
		return err
	}

	log.Info("MarketPlace contract info",
		"address", ctx.String("contract"),
		"owner", owner.Hex(),
		"products", products,
		"sellerRequests", sellers,
		"adminRequests", admins,
		"transactions", ledger,
	)
	return nil
}

func browseCmd(ctx *cli.Context) error {
	setupLogging()
	catalog := market.NewCatalog(readOnlyGateway(ctx), nil)

	products, err := catalog.Browse()
	if err != nil {
		return err
	}
	for _, p := range products {
		status := "available"
		if !p.IsAvailable {
			status = "sold out"
		}
		fmt.Printf("#%d  %s  %s HBAR  [%s]  %s\n", p.ID, p.Name, p.Price, status, p.ImageRef)
	}
	return nil
}
