package seedlang

// Snippet is one parsed *.wotws source file: an ordered list of top-level
// declarations. Order matters for !include/!share resolution and for the
// deterministic event-registration order spec.md's ordering guarantee
// depends on.
type Snippet struct {
	Contents []Content
}

// Content is a top-level snippet declaration: *OnDecl, *FunDecl,
// *CommandDirective, or *Annotation.
type Content interface{ isContent() }

// OnDecl registers an event: `on Trigger Action`.
type OnDecl struct {
	Trigger Trigger
	Action  Action
	Line    int
}

func (*OnDecl) isContent() {}

// TriggerKind discriminates the three trigger forms a `on` declaration can
// use, mirroring command.TriggerKind.
type TriggerKind int

const (
	TriggerClientEvent TriggerKind = iota
	TriggerBinding
	TriggerCondition
)

// Trigger is the parsed left-hand side of an `on` declaration.
type Trigger struct {
	Kind      TriggerKind
	EventName string // TriggerClientEvent
	Group     int32  // TriggerBinding
	Member    int32  // TriggerBinding
	Condition Expr   // TriggerCondition
}

// FunDecl declares a named, reusable action sequence: `fun name { ... }`.
type FunDecl struct {
	Name string
	Body []Action
	Line int
}

func (*FunDecl) isContent() {}

// CommandDirective is a compile-time `!name(args)` directive, optionally
// followed by a `{ ... }` body for meta-blocks like `!if`/`!repeat`.
type CommandDirective struct {
	Name string
	Args []Expr
	Body []Content
	Line int
}

func (*CommandDirective) isContent() {}

// Annotation is a `#name(args)` metadata declaration.
type Annotation struct {
	Name string
	Args []Expr
	Line int
}

func (*Annotation) isContent() {}

// Action is one statement inside a function body or `on`/`if` action:
// *IfAction, *CallAction, or *BlockAction.
type Action interface{ isAction() }

// IfAction runs Then only when Cond evaluates true.
type IfAction struct {
	Cond Expr
	Then Action
	Line int
}

func (*IfAction) isAction() {}

// CallAction invokes a builtin or user-defined function for its effect.
type CallAction struct {
	Name string
	Args []Expr
	Line int
}

func (*CallAction) isAction() {}

// BlockAction groups a sequence of actions run in order.
type BlockAction struct {
	Actions []Action
}

func (*BlockAction) isAction() {}

// LetAction binds Value to Name for the remainder of the enclosing scope:
// `let name = expr`.
type LetAction struct {
	Name  string
	Value Expr
	Line  int
}

func (*LetAction) isAction() {}

// Expr is an expression node: *LitInt, *LitFloat, *LitString, *LitBool,
// *LitUberIdent, *Ident, *Call, *Binary, *Unary.
type Expr interface{ isExpr() }

type LitInt struct {
	Value int64
}

func (*LitInt) isExpr() {}

type LitFloat struct {
	Value float64
}

func (*LitFloat) isExpr() {}

type LitString struct {
	Value string
}

func (*LitString) isExpr() {}

type LitBool struct {
	Value bool
}

func (*LitBool) isExpr() {}

// LitUberIdent is a group|member literal, e.g. 6|2000.
type LitUberIdent struct {
	Group  int32
	Member int32
}

func (*LitUberIdent) isExpr() {}

// Ident references a `let`-bound identifier or a zero-arg function call.
type Ident struct {
	Name string
}

func (*Ident) isExpr() {}

// Call is a named function invocation used as a value (e.g. `fetch(...)`).
type Call struct {
	Name string
	Args []Expr
	Line int
}

func (*Call) isExpr() {}

// Binary is a two-operand arithmetic, comparison, or logical expression.
// Op is one of "+","-","*","/","==","!=","<=","<",">=",">","&&","||".
type Binary struct {
	Op          string
	Left, Right Expr
	Line        int
}

func (*Binary) isExpr() {}

// Unary is a prefix operator expression. Op is "!" or "-".
type Unary struct {
	Op      string
	Operand Expr
	Line    int
}

func (*Unary) isExpr() {}

// ListLit is a bracketed value list, e.g. the pool argument to
// !random_pool(id, type, [1, 2, 3]).
type ListLit struct {
	Items []Expr
}

func (*ListLit) isExpr() {}
