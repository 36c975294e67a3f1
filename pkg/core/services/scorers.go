package services

import (
	"fmt"

	"github.com/jakechorley/natshelper/internal/config"
	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/core/staffing"
	"github.com/jakechorley/natshelper/pkg/core/staffing/scorers"
)

// BuildScorers creates the configured scorers, in a fixed order
func BuildScorers(cfg config.ScoringConfig, comp *model.Competition, snapshot *staffing.Snapshot, namespace string) ([]staffing.Scorer, error) {
	var list []staffing.Scorer

	if cfg.JobCount != nil {
		list = append(list, scorers.NewJobCountScorer(cfg.JobCount.Weight))
	}
	if cfg.Preference != nil {
		preference := scorers.NewPreferenceScorer(cfg.Preference.Weight, cfg.Preference.Prefix, cfg.Preference.Prior, cfg.Preference.AllJobs)
		if namespace != "" {
			preference = preference.WithNamespace(namespace)
		}
		list = append(list, preference)
	}
	if cfg.AdjacentGroup != nil {
		list = append(list, scorers.NewAdjacentGroupScorer(snapshot, cfg.AdjacentGroup.Weight))
	}
	if cfg.FollowingGroup != nil {
		list = append(list, scorers.NewFollowingGroupScorer(snapshot, cfg.FollowingGroup.Weight))
	}
	for _, speed := range cfg.ScrambleSpeed {
		list = append(list, scorers.NewScrambleSpeedScorer(speed.Event, speed.MaxTime, speed.Weight))
	}
	for _, rule := range cfg.GroupRules {
		condition, err := scorers.RuleCondition(scorers.Rule{
			RRule:  rule.RRule,
			Rooms:  rule.Rooms,
			Events: rule.Events,
		}, comp)
		if err != nil {
			return nil, fmt.Errorf("group rule %s: %w", rule.Name, err)
		}
		list = append(list, scorers.NewGroupScorer(condition, rule.Weight).Named(rule.Name))
	}

	return list, nil
}
