package logiclang

import (
	"fmt"
	"strconv"

	"github.com/oriwisp/seedgen/pkg/inventory"
	"github.com/oriwisp/seedgen/pkg/logicgraph"
	"github.com/oriwisp/seedgen/pkg/worldsettings"
)

// astReq mirrors logicgraph.Requirement but keeps a State reference as a
// dotted name string, since the node index it resolves to is not known
// until the whole file (and therefore every anchor/pickup/state name) has
// been parsed.
type astReq struct {
	kind       logicgraph.Kind
	difficulty worldsettings.Difficulty
	trickName  string
	skill      inventory.Skill
	count      int
	shard      inventory.Shard
	teleporter string
	stateName  string
	amount     float64
	combat     []astCombatEntry
	children   []astReq
}

type astCombatEntry struct {
	enemyName string
	count     int
}

type astConnection struct {
	kind logicgraph.NodeKind // NodePickup, NodeState, NodeQuest, or NodeAnchor for plain Connection
	name string
	req  astReq
}

type astDoor struct {
	id     string
	target string
	enter  astReq
}

type astRefill struct {
	health, energy float64
	req            astReq
	hasReq         bool
}

type astAnchor struct {
	name        string
	connections []astConnection
	doors       []astDoor
	refills     []astRefill
}

var skillNamesLower = buildSkillNameIndex()

func buildSkillNameIndex() map[string]inventory.Skill {
	m := make(map[string]inventory.Skill)
	for s := inventory.Bash; s <= inventory.InkwaterAncestralLight; s++ {
		m[s.String()] = s
	}
	return m
}

var shardNamesIndex = buildShardNameIndex()

func buildShardNameIndex() map[string]inventory.Shard {
	m := make(map[string]inventory.Shard)
	for s := inventory.Overcharge; s <= inventory.LifePact; s++ {
		m[s.String()] = s
	}
	return m
}

// parser walks a flat token stream with a single lookahead cursor, as a
// straightforward recursive-descent parser would.
type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() Token  { return p.toks[p.pos] }
func (p *parser) advance() Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}
func (p *parser) at(kind TokKind) bool { return p.peek().Kind == kind }
func (p *parser) atWord(text string) bool {
	return p.peek().Kind == TokWord && p.peek().Text == text
}

// skipToDedent implements the error-recovery rule: on a syntax error inside
// an indented block, skip tokens until the matching Dedent.
func (p *parser) skipToDedent() {
	depth := 0
	for {
		t := p.peek()
		if t.Kind == TokEOF {
			return
		}
		if t.Kind == TokIndent {
			depth++
		}
		if t.Kind == TokDedent {
			if depth == 0 {
				p.advance()
				return
			}
			depth--
		}
		p.advance()
	}
}

// skipToLineEnd implements the requirement-line recovery rule: skip to the
// next newline, OR, or AND separator.
func (p *parser) skipToLineEnd() {
	for {
		t := p.peek()
		if t.Kind == TokEOF || t.Kind == TokNewline || t.Kind == TokOR ||
			(t.Kind == TokSymbol && t.Text == ",") {
			return
		}
		p.advance()
	}
}

// ParseAreas parses a full areas.wotw source into an unresolved anchor
// list. Call Build to turn this into a logicgraph.Graph once every anchor
// name referenced anywhere in the file is known.
func ParseAreas(src string) ([]astAnchor, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	var anchors []astAnchor
	var errs []error

	for !p.at(TokEOF) {
		if p.at(TokNewline) {
			p.advance()
			continue
		}
		if p.at(TokDedent) {
			p.advance()
			continue
		}
		if p.atWord("anchor") {
			a, err := p.parseAnchor()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			anchors = append(anchors, a)
			continue
		}
		errs = append(errs, fmt.Errorf("logiclang: line %d: expected 'anchor', got %q", p.peek().Line, p.peek().Text))
		p.advance()
	}

	if len(errs) > 0 {
		return anchors, fmt.Errorf("logiclang: %d error(s), first: %w", len(errs), errs[0])
	}
	return anchors, nil
}

func (p *parser) parseAnchor() (astAnchor, error) {
	p.advance() // "anchor"
	if !p.at(TokWord) {
		p.skipToDedent()
		return astAnchor{}, fmt.Errorf("logiclang: line %d: expected anchor name", p.peek().Line)
	}
	a := astAnchor{name: p.advance().Text}

	if p.atWord("at") {
		p.advance()
		if p.at(TokNumber) {
			p.advance()
		}
		if p.at(TokSymbol) && p.peek().Text == "," {
			p.advance()
		}
		if p.at(TokNumber) {
			p.advance()
		}
	}

	if !(p.at(TokSymbol) && p.peek().Text == ":") {
		p.skipToDedent()
		return a, fmt.Errorf("logiclang: line %d: expected ':' after anchor header", p.peek().Line)
	}
	p.advance()
	if p.at(TokNewline) {
		p.advance()
	}
	if !p.at(TokIndent) {
		return a, nil // empty anchor body is legal (a dead-end node)
	}
	p.advance()

	for !p.at(TokDedent) && !p.at(TokEOF) {
		if p.at(TokNewline) {
			p.advance()
			continue
		}
		switch {
		case p.atWord("door"):
			d, err := p.parseDoor()
			if err != nil {
				p.skipToDedent()
				return a, err
			}
			a.doors = append(a.doors, d)
		case p.atWord("nospawn"):
			p.advance()
			if p.at(TokNewline) {
				p.advance()
			}
		case p.atWord("tprestriction"):
			p.advance()
			if p.at(TokSymbol) && p.peek().Text == ":" {
				p.advance()
				if _, err := p.parseReqGroup(); err != nil {
					return a, err
				}
			} else if p.at(TokNewline) {
				p.advance()
			}
		case p.atWord("refill"):
			r, err := p.parseRefill()
			if err != nil {
				p.skipToDedent()
				return a, err
			}
			a.refills = append(a.refills, r)
		case p.atWord("state") || p.atWord("quest") || p.atWord("pickup") || p.atWord("conn"):
			kind := connKindFor(p.advance().Text)
			if !p.at(TokWord) {
				return a, fmt.Errorf("logiclang: line %d: expected target name", p.peek().Line)
			}
			name := p.advance().Text
			if !(p.at(TokSymbol) && p.peek().Text == ":") {
				return a, fmt.Errorf("logiclang: line %d: expected ':' after connection target", p.peek().Line)
			}
			p.advance()
			req, err := p.parseReqGroup()
			if err != nil {
				return a, err
			}
			a.connections = append(a.connections, astConnection{kind: kind, name: name, req: req})
		default:
			return a, fmt.Errorf("logiclang: line %d: unexpected token %q in anchor body", p.peek().Line, p.peek().Text)
		}
	}
	if p.at(TokDedent) {
		p.advance()
	}
	return a, nil
}

func connKindFor(word string) logicgraph.NodeKind {
	switch word {
	case "state":
		return logicgraph.NodeState
	case "quest":
		return logicgraph.NodeQuest
	case "pickup":
		return logicgraph.NodePickup
	default:
		return logicgraph.NodeAnchor
	}
}

func (p *parser) parseDoor() (astDoor, error) {
	p.advance() // "door"
	var d astDoor
	if p.at(TokSymbol) && p.peek().Text == ":" {
		p.advance()
	}
	if p.at(TokNewline) {
		p.advance()
	}
	if !p.at(TokIndent) {
		return d, fmt.Errorf("logiclang: line %d: expected indented door body", p.peek().Line)
	}
	p.advance()
	for !p.at(TokDedent) && !p.at(TokEOF) {
		if p.at(TokNewline) {
			p.advance()
			continue
		}
		switch {
		case p.atWord("id"):
			p.advance()
			if p.at(TokSymbol) && p.peek().Text == ":" {
				p.advance()
			}
			if p.at(TokWord) || p.at(TokNumber) {
				d.id = p.advance().Text
			}
		case p.atWord("target"):
			p.advance()
			if p.at(TokSymbol) && p.peek().Text == ":" {
				p.advance()
			}
			if p.at(TokWord) {
				d.target = p.advance().Text
			}
		case p.atWord("enter"):
			p.advance()
			if p.at(TokSymbol) && p.peek().Text == ":" {
				p.advance()
			}
			req, err := p.parseReqGroup()
			if err != nil {
				return d, err
			}
			d.enter = req
		default:
			return d, fmt.Errorf("logiclang: line %d: unexpected token %q in door body", p.peek().Line, p.peek().Text)
		}
	}
	if p.at(TokDedent) {
		p.advance()
	}
	return d, nil
}

func (p *parser) parseRefill() (astRefill, error) {
	p.advance() // "refill"
	var r astRefill
	if p.at(TokWord) {
		switch p.advance().Text {
		case "health":
			r.health = 1
		case "energy":
			r.energy = 1
		case "full":
			r.health, r.energy = -1, -1 // -1 marks "refill to max"
		}
	}
	if p.at(TokSymbol) && p.peek().Text == "=" {
		p.advance()
		if p.at(TokNumber) {
			n, _ := strconv.ParseFloat(p.advance().Text, 64)
			if r.health != 0 {
				r.health = n
			} else {
				r.energy = n
			}
		}
	}
	if p.at(TokSymbol) && p.peek().Text == ":" {
		p.advance()
		req, err := p.parseReqGroup()
		if err != nil {
			return r, err
		}
		r.req, r.hasReq = req, true
	} else if p.at(TokNewline) {
		p.advance()
	}
	return r, nil
}

// parseReqGroup parses a requirement line, optionally followed by a nested
// indented group of further requirement lines (the ":" NL INDENT form),
// which combine as an OR of ANDs: the inline line is itself one AND clause,
// and each further line in the nested group is an alternative.
func (p *parser) parseReqGroup() (astReq, error) {
	first, err := p.parseReqLine()
	if err != nil {
		p.skipToLineEnd()
		first = astReq{kind: logicgraph.Impossible}
	}
	if p.at(TokNewline) {
		p.advance()
	}
	if !p.at(TokIndent) {
		return first, nil
	}
	p.advance()
	alternatives := []astReq{first}
	for !p.at(TokDedent) && !p.at(TokEOF) {
		if p.at(TokNewline) {
			p.advance()
			continue
		}
		line, err := p.parseReqLine()
		if err != nil {
			p.skipToLineEnd()
			continue
		}
		alternatives = append(alternatives, line)
		if p.at(TokNewline) {
			p.advance()
		}
	}
	if p.at(TokDedent) {
		p.advance()
	}
	return astReq{kind: logicgraph.Or, children: alternatives}, nil
}

func (p *parser) parseReqLine() (astReq, error) {
	var ors []astReq
	var ands []astReq

	for {
		term, err := p.parseTerm()
		if err != nil {
			return astReq{}, err
		}
		ands = append(ands, term)

		if p.at(TokSymbol) && p.peek().Text == "," {
			p.advance()
			continue
		}
		if p.at(TokOR) {
			p.advance()
			ors = append(ors, flattenAnd(ands))
			ands = nil
			continue
		}
		break
	}
	ors = append(ors, flattenAnd(ands))
	if len(ors) == 1 {
		return ors[0], nil
	}
	return astReq{kind: logicgraph.Or, children: ors}, nil
}

func flattenAnd(ands []astReq) astReq {
	if len(ands) == 1 {
		return ands[0]
	}
	return astReq{kind: logicgraph.And, children: ands}
}

func (p *parser) parseTerm() (astReq, error) {
	if p.at(TokOR) || p.at(TokSymbol) {
		return astReq{}, fmt.Errorf("logiclang: line %d: expected requirement term", p.peek().Line)
	}
	if !p.at(TokWord) {
		return astReq{}, fmt.Errorf("logiclang: line %d: expected requirement term", p.peek().Line)
	}
	name := p.advance().Text

	switch name {
	case "free":
		return astReq{kind: logicgraph.Free}, nil
	case "impossible":
		return astReq{kind: logicgraph.Impossible}, nil
	case "hard":
		return astReq{kind: logicgraph.NormalGameDifficulty}, nil
	case "Water":
		return astReq{kind: logicgraph.Water}, nil
	}

	hasEq := p.at(TokSymbol) && p.peek().Text == "="
	var rhsWord string
	var rhsNum float64
	var rhsIsNum bool
	if hasEq {
		p.advance()
		if p.at(TokNumber) {
			rhsNum, _ = strconv.ParseFloat(p.advance().Text, 64)
			rhsIsNum = true
		} else if p.at(TokWord) {
			rhsWord = p.advance().Text
		}
	}

	switch name {
	case "Trick":
		return astReq{kind: logicgraph.Trick, trickName: rhsWord}, nil
	case "Difficulty":
		d, err := worldsettings.ParseDifficulty(rhsWord)
		if err != nil {
			return astReq{}, fmt.Errorf("logiclang: %w", err)
		}
		return astReq{kind: logicgraph.DifficultyAtLeast, difficulty: d}, nil
	case "SpiritLight":
		return astReq{kind: logicgraph.SpiritLightReq, count: int(rhsNum)}, nil
	case "GorlekOre":
		return astReq{kind: logicgraph.GorlekOreReq, count: int(rhsNum)}, nil
	case "Keystone":
		return astReq{kind: logicgraph.KeystoneReq, count: int(rhsNum)}, nil
	case "Shard":
		s, ok := shardNamesIndex[rhsWord]
		if !ok {
			return astReq{}, fmt.Errorf("logiclang: unknown shard %q", rhsWord)
		}
		return astReq{kind: logicgraph.ShardReq, shard: s}, nil
	case "Teleporter":
		return astReq{kind: logicgraph.TeleporterReq, teleporter: rhsWord}, nil
	case "Damage":
		return astReq{kind: logicgraph.Damage, amount: rhsNum}, nil
	case "Danger":
		return astReq{kind: logicgraph.Danger, amount: rhsNum}, nil
	case "BreakWall":
		return astReq{kind: logicgraph.BreakWall, amount: rhsNum}, nil
	case "Boss":
		return astReq{kind: logicgraph.Boss, amount: rhsNum}, nil
	case "ShurikenBreak":
		return astReq{kind: logicgraph.ShurikenBreak, amount: rhsNum}, nil
	case "SentryBreak":
		return astReq{kind: logicgraph.SentryBreak, amount: rhsNum}, nil
	case "Combat":
		entries := []astCombatEntry{{enemyName: rhsWord, count: 1}}
		for p.at(TokSymbol) && p.peek().Text == "+" {
			p.advance()
			if !p.at(TokWord) {
				return astReq{}, fmt.Errorf("logiclang: line %d: expected enemy name after '+'", p.peek().Line)
			}
			enemyName := p.advance().Text
			count := 1
			if p.at(TokSymbol) && p.peek().Text == "=" {
				p.advance()
				if p.at(TokNumber) {
					n, _ := strconv.Atoi(p.advance().Text)
					count = n
				}
			}
			entries = append(entries, astCombatEntry{enemyName: enemyName, count: count})
		}
		return astReq{kind: logicgraph.CombatReq, combat: entries}, nil
	}

	if s, ok := skillNamesLower[name]; ok {
		if hasEq && rhsIsNum {
			return astReq{kind: logicgraph.EnergySkill, skill: s, count: int(rhsNum)}, nil
		}
		return astReq{kind: logicgraph.SkillReq, skill: s}, nil
	}

	// Anything else is a dotted logic-identifier: a reference to another
	// node's reached state.
	return astReq{kind: logicgraph.StateReq, stateName: name}, nil
}
