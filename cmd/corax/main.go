// Command corax is a line-oriented debug console over the engine core —
// deliberately not a full UCI search loop, since the UCI text protocol and
// the alpha-beta search driver are external collaborators, out of scope
// here. Grounded on the teacher's uciLoop/parseSetOption for the
// scan-dispatch idiom, stripped to the commands that reach into the core:
// position, d, eval, checkers, moves, perft, splitperft, setoption.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kvisle/corax/internal/engine"
	"github.com/kvisle/corax/internal/logx"
	"github.com/kvisle/corax/internal/score"
)

func main() {
	var (
		debug = flag.Bool("debug", false, "enable debug-level logging")
	)
	flag.Parse()

	log := logx.New(*debug)
	opts := engine.DefaultOptions()
	pos := engine.NewPosition(&opts)

	log.Info().Msg("corax debug console ready; type 'help' for commands")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if !dispatch(pos, parts, log) {
			return
		}
	}
}

// dispatch handles one console line. Returns false on "quit"/"exit".
func dispatch(pos *engine.Position, parts []string, log zerolog.Logger) bool {
	cmd := parts[0]
	switch cmd {
	case "quit", "exit":
		return false

	case "help":
		fmt.Println("commands: position {startpos|fen <FEN>} [moves ...] | d | eval | checkers | moves | perft N | splitperft N | go perft N | setoption name <N> value <V> | quit")

	case "position":
		handlePosition(pos, parts, log)

	case "d":
		fmt.Print(pos.String())
		fmt.Printf("fen: %s\n", pos.FEN())
		fmt.Printf("key: %016x\n", pos.Key())

	case "eval":
		raw := pos.StaticEval()
		fmt.Printf("static eval: %d cp (raw), %d cp (normalized)\n", raw, score.NormalizeCP(raw))

	case "checkers":
		bb := pos.Checkers()
		if bb.Empty() {
			fmt.Println("(none)")
			break
		}
		for bb != 0 {
			sq := bb.PopLSB()
			fmt.Println(sq.String())
		}

	case "moves":
		for _, m := range engine.GenerateAll(pos) {
			fmt.Println(m.UCIString(pos.Options().Chess960))
		}

	case "perft":
		handlePerft(pos, parts, false, log)

	case "splitperft":
		handlePerft(pos, parts, true, log)

	case "go":
		if len(parts) >= 3 && parts[1] == "perft" {
			handlePerft(pos, parts[1:], true, log)
		} else {
			fmt.Println("info string go requires an external search driver; this console only supports 'go perft N'")
		}

	case "setoption":
		handleSetOption(pos, parts, log)

	default:
		log.Error().Str("command", cmd).Msg("unrecognized command")
	}
	return true
}

func handlePosition(pos *engine.Position, parts []string, log zerolog.Logger) {
	if len(parts) < 2 {
		log.Error().Msg("position requires arguments")
		return
	}

	moveIdx := -1
	for i := 2; i < len(parts); i++ {
		if parts[i] == "moves" {
			moveIdx = i
			break
		}
	}

	switch parts[1] {
	case "startpos":
		pos.LoadFEN(engine.StartFEN)
	case "fen":
		end := len(parts)
		if moveIdx != -1 {
			end = moveIdx
		}
		fen := strings.Join(parts[2:end], " ")
		if !pos.LoadFEN(fen) {
			log.Error().Str("fen", fen).Msg("malformed FEN, position left unchanged")
			return
		}
	default:
		log.Error().Str("arg", parts[1]).Msg("position requires startpos or fen")
		return
	}

	if moveIdx == -1 {
		return
	}
	for _, mv := range parts[moveIdx+1:] {
		m, ok := pos.ParseUCIMove(mv)
		if !ok {
			log.Error().Str("move", mv).Msg("malformed or illegal move, remaining moves ignored")
			return
		}
		pos.ApplyMove(m)
	}
}

func handlePerft(pos *engine.Position, parts []string, split bool, log zerolog.Logger) {
	if len(parts) < 2 {
		log.Error().Msg("perft requires a depth argument")
		return
	}
	depth, err := strconv.Atoi(parts[1])
	if err != nil || depth < 0 {
		log.Error().Str("depth", parts[1]).Msg("invalid perft depth")
		return
	}

	start := time.Now()
	if split {
		lines := engine.SplitPerft(pos, depth)
		var total uint64
		for _, l := range lines {
			fmt.Printf("%s: %d\n", l.Move.UCIString(pos.Options().Chess960), l.Nodes)
			total += l.Nodes
		}
		fmt.Printf("\nnodes searched: %d\n", total)
	} else {
		nodes := engine.Perft(pos, depth)
		elapsed := time.Since(start)
		nps := uint64(0)
		if elapsed > 0 {
			nps = uint64(float64(nodes) / elapsed.Seconds())
		}
		fmt.Printf("nodes: %d, time: %s, nps: %d\n", nodes, elapsed, nps)
	}
}

func handleSetOption(pos *engine.Position, parts []string, log zerolog.Logger) {
	name, value := parseSetOption(parts)
	opts := pos.Options()

	switch strings.ToLower(name) {
	case "uci_chess960":
		opts.Chess960 = strings.EqualFold(value, "true")
	case "underpromotions":
		opts.Underpromotions = strings.EqualFold(value, "true")
	default:
		log.Warn().Str("name", name).Str("value", value).Msg("unrecognized option, ignored")
	}
}

// parseSetOption mirrors the teacher's parseSetOption: find "name" ... and
// an optional "value" ..., joining the words between them.
func parseSetOption(parts []string) (name, value string) {
	nameStart, nameEnd, valueStart := -1, -1, -1
	for i, p := range parts {
		if p == "name" && nameStart == -1 {
			nameStart = i + 1
			continue
		}
		if p == "value" && nameStart != -1 && nameEnd == -1 {
			nameEnd = i
			valueStart = i + 1
			break
		}
	}
	if nameStart == -1 || nameStart > len(parts) {
		return "", ""
	}
	if nameEnd == -1 {
		return strings.Join(parts[nameStart:], " "), ""
	}
	if nameStart >= nameEnd {
		return "", ""
	}
	return strings.Join(parts[nameStart:nameEnd], " "), strings.Join(parts[valueStart:], " ")
}
