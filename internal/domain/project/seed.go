package project

// Seed returns the example collection used when nothing usable is stored.
func Seed() []Project {
	return []Project{
		{
			ID:          "1",
			Name:        "Project Dashboard",
			Summary:     "Track all side projects in one place",
			Description: "Track progress across side projects",
			Type:        TypePersonal,
			Usefulness:  5,
			Status:      StatusInProgress,
			Stage:       StageBuild,
			GithubURL:   "https://github.com/username/project-dashboard",
			LastUpdated: "2023-05-10",
			Progress:    IntPtr(75),
			ActivityLog: []string{
				"2023-05-10: Added filtering functionality",
				"2023-05-08: Created initial project structure",
				"2023-05-05: Brainstormed UI design",
			},
			Tags: []string{"React", "Personal"},
		},
		{
			ID:          "2",
			Name:        "Recipe Manager",
			Summary:     "Simple recipe organizer app",
			Description: "App to store and organize recipes",
			Type:        TypeSell,
			Usefulness:  4,
			Status:      StatusLive,
			Stage:       StageMarket,
			IsMonetized: true,
			GithubURL:   "https://github.com/username/recipe-manager",
			WebsiteURL:  "https://recipe-app.example.com",
			LastUpdated: "2023-05-01",
			Progress:    IntPtr(100),
			ActivityLog: []string{
				"2023-05-01: Deployed to production",
				"2023-04-28: Completed user testing",
				"2023-04-20: Implemented recipe search",
			},
			Tags: []string{"React", "Commercial", "Food"},
		},
		{
			ID:          "3",
			Name:        "Budget Tracker",
			Summary:     "Keep track of personal finances",
			Description: "Personal finance tool",
			Type:        TypePersonal,
			Usefulness:  3,
			Status:      StatusAbandoned,
			Stage:       StageLaunch,
			GithubURL:   "https://github.com/username/budget-tracker",
			LastUpdated: "2023-03-15",
			Progress:    IntPtr(30),
			ActivityLog: []string{
				"2023-03-15: Decided to pause development",
				"2023-03-10: Added expense categories",
				"2023-03-01: Started project setup",
			},
			Tags: []string{"Finance"},
		},
		{
			ID:          "4",
			Name:        "AI Writing Assistant",
			Summary:     "AI-powered content creation",
			Description: "Tool to help with content creation",
			Type:        TypeSell,
			Usefulness:  5,
			Status:      StatusIdea,
			Stage:       StageIdea,
			NextAction:  "Research NLP libraries",
			Progress:    IntPtr(5),
			ActivityLog: []string{
				"2023-04-15: Initial concept documented",
				"2023-04-10: Market research completed",
			},
			Tags: []string{"AI", "Writing", "Commercial"},
		},
		{
			ID:          "5",
			Name:        "Fitness Tracker",
			Summary:     "Track workouts and progress",
			Description: "App to track workouts and progress",
			Type:        TypePersonal,
			Usefulness:  2,
			Status:      StatusInProgress,
			Stage:       StageBuild,
			GithubURL:   "https://github.com/username/fitness-tracker",
			WebsiteURL:  "https://fitness-app.example.com",
			NextAction:  "Implement workout timer",
			LastUpdated: "2023-04-20",
			Progress:    IntPtr(45),
			ActivityLog: []string{
				"2023-04-20: Added workout logging feature",
				"2023-04-15: Created UI mockups",
				"2023-04-10: Project setup",
			},
			Tags: []string{"Health", "Personal"},
		},
	}
}
