package services

import (
	"fmt"
	"sort"
	"strings"

	"skool-scraper/models"
	"skool-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(profiles []*models.CommunityProfile) *models.InsightReport {
	report := &models.InsightReport{
		ByStatus: make(map[string]int),
	}

	if len(profiles) == 0 {
		return report
	}

	report.TotalCommunities = len(profiles)

	var withMembers int
	var byFollowers []*models.CommunityProfile

	for _, p := range profiles {
		if p.CreatorProfileURL != "" {
			report.ResolvedProfiles++
		}
		if p.Status != "" && p.Status != models.Sentinel {
			report.ByStatus[p.Status]++
		}

		switch {
		case p.Price == "Free":
			report.FreeCommunities++
		case p.Price != "" && p.Price != models.Sentinel:
			report.PaidCommunities++
		}

		if members, err := NormalizeCount(p.Members); err == nil {
			report.TotalMembers += members
			withMembers++
			if report.Largest == nil {
				report.Largest = p
			} else if largest, err := NormalizeCount(report.Largest.Members); err == nil && members > largest {
				report.Largest = p
			}
		}

		if _, err := NormalizeCount(p.Followers); err == nil {
			byFollowers = append(byFollowers, p)
		}
	}

	if withMembers > 0 {
		report.AverageMembers = round2(report.TotalMembers / float64(withMembers))
	}

	// Top 5 by followers
	sort.Slice(byFollowers, func(i, j int) bool {
		fi, _ := NormalizeCount(byFollowers[i].Followers)
		fj, _ := NormalizeCount(byFollowers[j].Followers)
		return fi > fj
	})
	if len(byFollowers) > 5 {
		report.TopByFollowers = byFollowers[:5]
	} else {
		report.TopByFollowers = byFollowers
	}

	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 SKOOL COMMUNITY INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Communities scraped    : \033[1m%d\033[0m\n", r.TotalCommunities)
	fmt.Printf("  Creator profiles found : \033[1m%d\033[0m\n", r.ResolvedProfiles)
	fmt.Printf("  Free communities       : \033[1m%d\033[0m\n", r.FreeCommunities)
	fmt.Printf("  Paid communities       : \033[1m%d\033[0m\n", r.PaidCommunities)
	fmt.Println()

	// Membership
	fmt.Printf("\033[1;33m  Membership\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.TotalMembers > 0 {
		fmt.Printf("  Total members   : \033[1;32m%.0f\033[0m\n", r.TotalMembers)
		fmt.Printf("  Average members : \033[1;32m%.2f\033[0m\n", r.AverageMembers)
	} else {
		fmt.Printf("  No member data available\n")
	}
	fmt.Println()

	// Largest community
	if r.Largest != nil {
		fmt.Printf("\033[1;33m  Largest Community\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.Largest.Name, 50))
		fmt.Printf("  Members : \033[1;32m%s\033[0m\n", r.Largest.Members)
		fmt.Printf("  Price   : %s\n", r.Largest.Price)
		fmt.Println()
	}

	// Top creators by followers
	fmt.Printf("\033[1;33m  Top 5 Creators by Followers\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopByFollowers) == 0 {
		fmt.Printf("  No follower data\n")
	} else {
		for i, p := range r.TopByFollowers {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%s followers\033[0m\n",
				i+1, truncate(p.Name, 38), p.Followers)
		}
	}
	fmt.Println()

	// Communities by status
	fmt.Printf("\033[1;33m  Communities by Status\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ByStatus) == 0 {
		fmt.Printf("  No status data\n")
	} else {
		type statusCount struct {
			status string
			count  int
		}
		var statuses []statusCount
		for status, cnt := range r.ByStatus {
			statuses = append(statuses, statusCount{status, cnt})
		}
		sort.Slice(statuses, func(i, j int) bool {
			return statuses[i].count > statuses[j].count
		})
		for _, sc := range statuses {
			bar := strings.Repeat("█", sc.count)
			fmt.Printf("  %-20s %s (%d)\n", truncate(sc.status, 18), bar, sc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
