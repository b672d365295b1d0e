// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"silicon/internal/config"
	"silicon/internal/lsp"
)

const lsName = "silicon" // Name identifier for the language server

var (
	version = "0.1.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	log := commonlog.GetLogger("silicon.lsp")

	// stdout carries the protocol, so a missing log file means stderr
	cfg, err := config.LoadFromEnv()
	if err != nil {
		commonlog.Configure(1, nil)
		log.Errorf("ignoring configuration: %s", err)
		cfg = config.Default()
	} else {
		var path *string
		if cfg.Log.File != "" {
			path = &cfg.Log.File
		}
		commonlog.Configure(1+cfg.Log.Verbosity, path)
	}

	siliconHandler := lsp.NewSiliconHandler(cfg, version)

	handler = protocol.Handler{
		Initialize:                     siliconHandler.Initialize,
		Initialized:                    siliconHandler.Initialized,
		Shutdown:                       siliconHandler.Shutdown,
		SetTrace:                       siliconHandler.SetTrace,
		TextDocumentDidOpen:            siliconHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           siliconHandler.TextDocumentDidClose,
		TextDocumentDidChange:          siliconHandler.TextDocumentDidChange,
		TextDocumentDocumentSymbol:     siliconHandler.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: siliconHandler.TextDocumentSemanticTokensFull,
	}

	// debug=false keeps glsp's own message tracing out of the log
	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s", lsName, version)
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
