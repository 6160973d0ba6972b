package seedlang_test

import (
	"testing"

	"github.com/oriwisp/seedgen/pkg/seedlang"
)

func TestParseOnClientEvent(t *testing.T) {
	src := `
on ClientEvent(SeedCompleted) {
	save_state()
}
`
	snip, err := seedlang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(snip.Contents) != 1 {
		t.Fatalf("len(Contents) = %d, want 1", len(snip.Contents))
	}
	on, ok := snip.Contents[0].(*seedlang.OnDecl)
	if !ok {
		t.Fatalf("Contents[0] = %T, want *OnDecl", snip.Contents[0])
	}
	if on.Trigger.Kind != seedlang.TriggerClientEvent || on.Trigger.EventName != "SeedCompleted" {
		t.Fatalf("Trigger = %+v", on.Trigger)
	}
	block, ok := on.Action.(*seedlang.BlockAction)
	if !ok || len(block.Actions) != 1 {
		t.Fatalf("Action = %+v", on.Action)
	}
	call, ok := block.Actions[0].(*seedlang.CallAction)
	if !ok || call.Name != "save_state" {
		t.Fatalf("Actions[0] = %+v", block.Actions[0])
	}
}

func TestParseOnBindingTrigger(t *testing.T) {
	src := `on 6|2000 grant_item("HealthFragment")`
	snip, err := seedlang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	on := snip.Contents[0].(*seedlang.OnDecl)
	if on.Trigger.Kind != seedlang.TriggerBinding || on.Trigger.Group != 6 || on.Trigger.Member != 2000 {
		t.Fatalf("Trigger = %+v", on.Trigger)
	}
	call, ok := on.Action.(*seedlang.CallAction)
	if !ok || call.Name != "grant_item" || len(call.Args) != 1 {
		t.Fatalf("Action = %+v", on.Action)
	}
	if lit, ok := call.Args[0].(*seedlang.LitString); !ok || lit.Value != "HealthFragment" {
		t.Fatalf("Args[0] = %+v", call.Args[0])
	}
}

func TestParseOnConditionTrigger(t *testing.T) {
	src := `on get_bool(6|2000) == true && get_int(6|2001) >= 3 complete_goal()`
	snip, err := seedlang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	on := snip.Contents[0].(*seedlang.OnDecl)
	if on.Trigger.Kind != seedlang.TriggerCondition {
		t.Fatalf("Trigger.Kind = %v, want TriggerCondition", on.Trigger.Kind)
	}
	bin, ok := on.Trigger.Condition.(*seedlang.Binary)
	if !ok || bin.Op != "&&" {
		t.Fatalf("Condition = %+v", on.Trigger.Condition)
	}
}

func TestParseFunDeclAndIf(t *testing.T) {
	src := `
fun grant_all {
	if get_bool(6|2000) {
		grant_item("Bow")
	}
}
`
	snip, err := seedlang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn, ok := snip.Contents[0].(*seedlang.FunDecl)
	if !ok || fn.Name != "grant_all" {
		t.Fatalf("Contents[0] = %+v", snip.Contents[0])
	}
	if len(fn.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(fn.Body))
	}
	ifAction, ok := fn.Body[0].(*seedlang.IfAction)
	if !ok {
		t.Fatalf("Body[0] = %+v", fn.Body[0])
	}
	if _, ok := ifAction.Then.(*seedlang.BlockAction); !ok {
		t.Fatalf("Then = %+v", ifAction.Then)
	}
}

func TestParseCommandDirectiveWithBody(t *testing.T) {
	src := `
!if(config("expert_mode")) {
	on ClientEvent(Reload) grant_item("SpiritLight", 50)
}
`
	snip, err := seedlang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dir, ok := snip.Contents[0].(*seedlang.CommandDirective)
	if !ok || dir.Name != "if" {
		t.Fatalf("Contents[0] = %+v", snip.Contents[0])
	}
	if len(dir.Args) != 1 {
		t.Fatalf("len(Args) = %d, want 1", len(dir.Args))
	}
	if len(dir.Body) != 1 {
		t.Fatalf("len(Body) = %d, want 1", len(dir.Body))
	}
	if _, ok := dir.Body[0].(*seedlang.OnDecl); !ok {
		t.Fatalf("Body[0] = %+v", dir.Body[0])
	}
}

func TestParseAnnotation(t *testing.T) {
	src := `#category("quest")
on ClientEvent(SeedCompleted) save_state()`
	snip, err := seedlang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ann, ok := snip.Contents[0].(*seedlang.Annotation)
	if !ok || ann.Name != "category" {
		t.Fatalf("Contents[0] = %+v", snip.Contents[0])
	}
	if len(ann.Args) != 1 {
		t.Fatalf("len(Args) = %d, want 1", len(ann.Args))
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	src := `on get_int(6|2000) + 2 * 3 == 10 complete_goal()`
	snip, err := seedlang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	on := snip.Contents[0].(*seedlang.OnDecl)
	eq, ok := on.Trigger.Condition.(*seedlang.Binary)
	if !ok || eq.Op != "==" {
		t.Fatalf("Condition = %+v", on.Trigger.Condition)
	}
	add, ok := eq.Left.(*seedlang.Binary)
	if !ok || add.Op != "+" {
		t.Fatalf("Condition.Left = %+v, want top-level +", eq.Left)
	}
	mul, ok := add.Right.(*seedlang.Binary)
	if !ok || mul.Op != "*" {
		t.Fatalf("Condition.Left.Right = %+v, want nested *", add.Right)
	}
}

func TestParseLetAction(t *testing.T) {
	src := `
fun compute {
	let base = get_int(6|2000)
	grant_item("SpiritLight", base)
}
`
	snip, err := seedlang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fn := snip.Contents[0].(*seedlang.FunDecl)
	if len(fn.Body) != 2 {
		t.Fatalf("len(Body) = %d, want 2", len(fn.Body))
	}
	let, ok := fn.Body[0].(*seedlang.LetAction)
	if !ok || let.Name != "base" {
		t.Fatalf("Body[0] = %+v", fn.Body[0])
	}
	if _, ok := let.Value.(*seedlang.Call); !ok {
		t.Fatalf("Value = %+v", let.Value)
	}
}

func TestParseListLiteral(t *testing.T) {
	src := `!random_pool(pool_a, "int", [1, 2, 3])`
	snip, err := seedlang.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dir := snip.Contents[0].(*seedlang.CommandDirective)
	if len(dir.Args) != 3 {
		t.Fatalf("len(Args) = %d, want 3", len(dir.Args))
	}
	list, ok := dir.Args[2].(*seedlang.ListLit)
	if !ok || len(list.Items) != 3 {
		t.Fatalf("Args[2] = %+v", dir.Args[2])
	}
}

func TestParseUnterminatedBlockErrors(t *testing.T) {
	_, err := seedlang.Parse("fun f {\n  a()\n")
	if err == nil {
		t.Fatal("expected error for unterminated fun body")
	}
}
