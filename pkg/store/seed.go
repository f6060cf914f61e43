package store

import (
	"time"

	"github.com/aretw0/roster/pkg/core"
)

// SeedEmployees returns the initial employees.
func SeedEmployees() []core.Employee {
	return []core.Employee{
		{
			ID:         1,
			Name:       "Sarah Johnson",
			Title:      "Senior Software Engineer",
			Department: "Engineering",
			Skills:     []string{"React", "TypeScript", "Node.js", "AWS", "GraphQL"},
			Image:      "https://images.unsplash.com/photo-1494790108755-2616b612b5bb?w=200&h=200&fit=crop&crop=face",
			Ratings: []core.Rating{
				{ID: 1, Rating: 5, Comment: "Great collaborator.", Author: "Michael Chen", Date: "2024-01-15"},
				{ID: 2, Rating: 4, Comment: "Very knowledgeable.", Author: "Emily Rodriguez", Date: "2024-01-10"},
			},
		},
		{
			ID:         2,
			Name:       "Michael Chen",
			Title:      "Product Manager",
			Department: "Product",
			Skills:     []string{"Roadmapping", "Communication", "Analytics", "Figma"},
			Image:      "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=200&h=200&fit=crop&crop=face",
			Ratings: []core.Rating{
				{ID: 1, Rating: 5, Comment: "Clear direction and focus.", Author: "Sarah Johnson", Date: "2024-01-12"},
			},
		},
		{
			ID:         3,
			Name:       "Emily Rodriguez",
			Title:      "UX Designer",
			Department: "Design",
			Skills:     []string{"UX Research", "Wireframing", "Prototyping", "Accessibility"},
			Image:      "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=200&h=200&fit=crop&crop=face",
			Ratings: []core.Rating{
				{ID: 1, Rating: 5, Comment: "Beautiful designs.", Author: "David Kim", Date: "2024-01-18"},
			},
		},
		{
			ID:         4,
			Name:       "David Kim",
			Title:      "DevOps Engineer",
			Department: "Engineering",
			Skills:     []string{"Kubernetes", "CI/CD", "Terraform", "AWS"},
			Image:      "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=200&h=200&fit=crop&crop=face",
			Ratings:    []core.Rating{},
		},
		{
			ID:         5,
			Name:       "Lisa Thompson",
			Title:      "Marketing Manager",
			Department: "Marketing",
			Skills:     []string{"SEO", "Content", "Email Marketing", "Branding"},
			Image:      "https://images.unsplash.com/photo-1517841905240-472988babdf9?w=200&h=200&fit=crop&crop=face",
			Ratings:    []core.Rating{},
		},
		{
			ID:         6,
			Name:       "James Wilson",
			Title:      "Sales Director",
			Department: "Sales",
			Skills:     []string{"Negotiation", "CRM", "Prospecting", "Leadership"},
			Image:      "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=200&h=200&fit=crop&crop=face",
			Ratings:    []core.Rating{},
		},
	}
}

// SeedEmployers returns the initial employers.
func SeedEmployers() []core.Employer {
	return []core.Employer{
		{
			ID:            1,
			CompanyName:   "TechCorp Solutions",
			ContactPerson: "Анна Петрова",
			Email:         "anna.petrova@techcorp.ru",
			Phone:         "+7 (495) 123-45-67",
			Industry:      "Информационные технологии",
			Website:       "https://techcorp.ru",
			Address:       "г. Москва, ул. Тверская, 15",
			Description:   "Ведущая IT-компания, специализирующаяся на разработке корпоративных решений и веб-приложений.",
			Logo:          "https://images.unsplash.com/photo-1549923746-c502d488b3ea?w=200&h=200&fit=crop",
			CreatedAt:     "2024-01-15",
		},
		{
			ID:            2,
			CompanyName:   "Digital Marketing Pro",
			ContactPerson: "Сергей Иванов",
			Email:         "sergey@digitalmarketing.pro",
			Phone:         "+7 (812) 987-65-43",
			Industry:      "Маркетинг и реклама",
			Website:       "https://digitalmarketing.pro",
			Address:       "г. Санкт-Петербург, Невский пр., 28",
			Description:   "Агентство цифрового маркетинга с 10-летним опытом работы на рынке.",
			Logo:          "https://images.unsplash.com/photo-1572021335469-31706a17aaef?w=200&h=200&fit=crop",
			CreatedAt:     "2024-01-12",
		},
		{
			ID:            3,
			CompanyName:   "FinanceHub",
			ContactPerson: "Мария Смирнова",
			Email:         "maria@financehub.ru",
			Phone:         "+7 (495) 555-12-34",
			Industry:      "Финансовые услуги",
			Website:       "https://financehub.ru",
			Address:       "г. Москва, Кутузовский пр., 36",
			Description:   "Консалтинговая компания в области финансов и инвестиций.",
			Logo:          "https://images.unsplash.com/photo-1554224155-6726b3ff858f?w=200&h=200&fit=crop",
			CreatedAt:     "2024-01-10",
		},
	}
}

// SeedTests returns the initial skill tests.
func SeedTests() []core.Test {
	return []core.Test{
		{
			ID:             1,
			Title:          "JavaScript для начинающих",
			Description:    "Базовый тест на знание основ JavaScript, включающий вопросы по синтаксису, функциям, объектам и DOM.",
			Category:       "Программирование",
			Difficulty:     core.DifficultyEasy,
			Duration:       30,
			QuestionsCount: 15,
			Tags:           []string{"JavaScript", "Frontend", "Базовые навыки"},
			IsActive:       true,
			CreatedAt:      "2024-01-20",
		},
		{
			ID:             2,
			Title:          "React и современная разработка",
			Description:    "Углубленный тест на знание React, включая хуки, компоненты, состояние и современные паттерны разработки.",
			Category:       "Программирование",
			Difficulty:     core.DifficultyMedium,
			Duration:       45,
			QuestionsCount: 25,
			Tags:           []string{"React", "Frontend", "Компоненты", "Хуки"},
			IsActive:       true,
			CreatedAt:      "2024-01-18",
		},
		{
			ID:             3,
			Title:          "Основы маркетинга",
			Description:    "Тест на знание основ маркетинга, включая стратегии продвижения, анализ целевой аудитории и планирование кампаний.",
			Category:       "Маркетинг",
			Difficulty:     core.DifficultyEasy,
			Duration:       25,
			QuestionsCount: 12,
			Tags:           []string{"Маркетинг", "Стратегия", "Анализ"},
			IsActive:       true,
			CreatedAt:      "2024-01-15",
		},
		{
			ID:             4,
			Title:          "UX/UI Дизайн: принципы и практика",
			Description:    "Комплексный тест на знание принципов пользовательского опыта и интерфейсного дизайна.",
			Category:       "Дизайн",
			Difficulty:     core.DifficultyMedium,
			Duration:       40,
			QuestionsCount: 20,
			Tags:           []string{"UX", "UI", "Дизайн", "Пользовательский опыт"},
			IsActive:       true,
			CreatedAt:      "2024-01-12",
		},
		{
			ID:             5,
			Title:          "Продвинутые алгоритмы",
			Description:    "Сложный тест для опытных разработчиков на знание алгоритмов и структур данных.",
			Category:       "Программирование",
			Difficulty:     core.DifficultyHard,
			Duration:       60,
			QuestionsCount: 30,
			Tags:           []string{"Алгоритмы", "Структуры данных", "Backend", "Оптимизация"},
			IsActive:       true,
			CreatedAt:      "2024-01-10",
		},
		{
			ID:             6,
			Title:          "Финансовая грамотность",
			Description:    "Тест на знание основ финансов, бюджетирования и инвестиций для всех сотрудников.",
			Category:       "Финансы",
			Difficulty:     core.DifficultyEasy,
			Duration:       20,
			QuestionsCount: 10,
			Tags:           []string{"Финансы", "Бюджет", "Инвестиции"},
			IsActive:       false,
			CreatedAt:      "2024-01-08",
		},
	}
}

// SeedActivities returns the initial activity log, stamped relative to now
// (15 minutes to 2 hours ago), newest first.
func SeedActivities(now time.Time) []core.ActivityEntry {
	ago := func(min int) time.Time { return now.Add(-time.Duration(min) * time.Minute) }

	seed := []struct {
		in  core.NewActivity
		age int
	}{
		{core.NewActivity{
			Type:        core.ActivityEmployeeAdded,
			User:        "Administrator",
			Description: "Added a new employee",
			TargetID:    core.IntRef(1),
			TargetName:  "Sarah Johnson",
		}, 15},
		{core.NewActivity{
			Type:        core.ActivityEmployerAdded,
			User:        "HR Manager",
			Description: "Added a new employer",
			TargetID:    core.IntRef(1),
			TargetName:  "TechCorp Solutions",
		}, 30},
		{core.NewActivity{
			Type:        core.ActivityTestCompleted,
			User:        "Ivan Petrov",
			Description: "Completed a test",
			TargetName:  "JavaScript для начинающих",
			Details:     "Score: 85%",
		}, 45},
		{core.NewActivity{
			Type:        core.ActivityEmployeeRated,
			User:        "Maria Smirnova",
			Description: "Rated an employee",
			TargetID:    core.IntRef(2),
			TargetName:  "Michael Chen",
			Details:     "Rating: 5 stars",
		}, 60},
		{core.NewActivity{
			Type:        core.ActivityTestStarted,
			User:        "Anna Kozlova",
			Description: "Started a test",
			TargetName:  "React и современная разработка",
		}, 90},
		{core.NewActivity{
			Type:        core.ActivityUserLogin,
			User:        "System Administrator",
			Description: "Logged in",
		}, 120},
	}

	out := make([]core.ActivityEntry, len(seed))
	for i, s := range seed {
		out[i] = s.in.Build(i+1, ago(s.age))
	}
	return out
}
