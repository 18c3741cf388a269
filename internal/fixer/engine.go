package fixer

import (
	"fmt"

	"reklamefix/internal/pbcore"
)

// Tv2Publishers are the publisher entries every TV 2 commercial must carry.
// The first entry's name doubles as the marker of an earlier fix.
var Tv2Publishers = []pbcore.Publisher{
	{Name: "tv2d", Role: "channel_name"},
	{Name: "TV 2", Role: "kanalnavn"},
}

// Result describes what the engine did to one record.
type Result struct {
	Category Category
	pbcore.Edit
}

// Engine applies the rule set of a record's category.
type Engine struct {
	publishers []pbcore.Publisher
}

// NewEngine returns an engine using the standard TV 2 publisher entries.
func NewEngine() *Engine {
	return &Engine{publishers: Tv2Publishers}
}

// Apply classifies rec and runs the matching rules. Unclassified records are
// returned unchanged without running any rule.
func (e *Engine) Apply(rec *pbcore.Record) (Result, error) {
	category, err := Classify(rec)
	if err != nil {
		return Result{Category: category, Edit: pbcore.Edit{Record: rec}}, err
	}
	return e.ApplyCategory(category, rec)
}

// ApplyCategory runs the rules of an already known category.
func (e *Engine) ApplyCategory(category Category, rec *pbcore.Record) (Result, error) {
	var (
		edit pbcore.Edit
		err  error
	)
	switch category {
	case CategoryCinema:
		edit, err = e.cinemaRules(rec)
	case CategoryTv2:
		edit, err = e.tv2Rules(rec)
	case CategoryUnclassified:
		edit = pbcore.Edit{Record: rec}
	default:
		return Result{Category: category, Edit: pbcore.Edit{Record: rec}}, fmt.Errorf("unknown category %q", category)
	}
	if err != nil {
		return Result{Category: category, Edit: pbcore.Edit{Record: rec}}, err
	}
	return Result{Category: category, Edit: edit}, nil
}

func (e *Engine) cinemaRules(rec *pbcore.Record) (pbcore.Edit, error) {
	return rec.MoveAlternativeTitle()
}

// tv2Rules runs both fixes regardless of the first one's outcome.
func (e *Engine) tv2Rules(rec *pbcore.Record) (pbcore.Edit, error) {
	edit, err := rec.InsertBroadcastPublishers(e.publishers...)
	if err != nil {
		return pbcore.Edit{}, err
	}
	return edit.Then((*pbcore.Record).MoveAlternativeTitle)
}
