package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/haerye/jindo/internal/models"
)

type GoalsCmd struct {
	Hangul      *int `help:"Daily hangul target."`
	Vocabulary  *int `help:"Daily vocabulary target."`
	Grammar     *int `help:"Daily grammar target."`
	Interactive bool `short:"i" help:"Edit goals in an interactive form."`
}

func (c *GoalsCmd) Run(ctx *Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	current := ctx.Progress.Summary()

	goals := map[models.Category]int{}
	if c.Interactive {
		var err error
		goals, err = c.runForm(current.Goals)
		if err != nil {
			return err
		}
	} else {
		if c.Hangul != nil {
			goals[models.CategoryHangul] = *c.Hangul
		}
		if c.Vocabulary != nil {
			goals[models.CategoryVocabulary] = *c.Vocabulary
		}
		if c.Grammar != nil {
			goals[models.CategoryGrammar] = *c.Grammar
		}
	}

	if len(goals) > 0 {
		for cat, v := range goals {
			if v < 0 {
				return fmt.Errorf("goal for %s must be non-negative", cat)
			}
		}
		ctx.Progress.SetGoals(goals)
	}

	updated := ctx.Progress.Summary()
	fmt.Println("Daily goals:")
	for _, cat := range models.GoalCategories() {
		fmt.Printf("  %-11s %d\n", cat, updated.Goals[string(cat)])
	}
	fmt.Printf("Total items per day: %d\n", updated.TotalItems)
	return nil
}

func (c *GoalsCmd) runForm(current map[string]int) (map[models.Category]int, error) {
	values := map[models.Category]*string{}
	var fields []huh.Field
	for _, cat := range models.GoalCategories() {
		v := strconv.Itoa(current[string(cat)])
		values[cat] = &v
		fields = append(fields, huh.NewInput().
			Title(fmt.Sprintf("Daily %s goal", cat)).
			Value(values[cat]).
			Validate(validateGoal))
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	if err := form.Run(); err != nil {
		return nil, err
	}

	goals := map[models.Category]int{}
	for cat, v := range values {
		n, err := strconv.Atoi(*v)
		if err != nil {
			return nil, fmt.Errorf("invalid goal for %s: %w", cat, err)
		}
		goals[cat] = n
	}
	return goals, nil
}

func validateGoal(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 0 {
		return fmt.Errorf("goal must be non-negative")
	}
	return nil
}
