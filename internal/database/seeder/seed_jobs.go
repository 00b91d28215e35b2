package seeder

import (
	"context"
	"fmt"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database"
)

type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "job_posts",
		"id",
		"recruiter_id",
		"title",
		"description",
		"stipend",
		"type",
		"location",
		"status",
	); err != nil {
		return err
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range sampleJobs {
			_, err := tx.Exec(ctx, `
				INSERT INTO job_posts (recruiter_id, title, description, stipend, type, location, status)
				SELECT r.id, $2, $3, $4, $5, $6, 'OPEN'
				FROM recruiters r JOIN users u ON u.id = r.user_id
				WHERE u.email = $1
				  AND NOT EXISTS (SELECT 1 FROM job_posts j WHERE j.recruiter_id = r.id AND j.title = $2)`,
				it.RecruiterEmail, it.Title, it.Description, it.Stipend, it.Type, it.Location,
			)
			if err != nil {
				return fmt.Errorf("job %q: %w", it.Title, err)
			}
		}
		return nil
	})
}

var sampleJobs = []struct {
	RecruiterEmail string
	Title          string
	Description    string
	Stipend        string
	Type           string
	Location       string
}{
	{
		RecruiterEmail: "recruiter@techcorp.com",
		Title:          "Senior Full Stack Developer",
		Description:    "Join our engineering team building React and Node.js products on AWS. Skills: React, Node.js, TypeScript, PostgreSQL.",
		Stipend:        "$120,000 - $150,000",
		Type:           "Full-time",
		Location:       "San Francisco, CA",
	},
	{
		RecruiterEmail: "careers@innovatelabs.com",
		Title:          "Frontend React Developer",
		Description:    "Build user interfaces for our SaaS platform with Next.js, TypeScript and Tailwind CSS.",
		Stipend:        "$90,000 - $120,000",
		Type:           "Full-time",
		Location:       "Austin, TX",
	},
	{
		RecruiterEmail: "hr@cloudtech.com",
		Title:          "DevOps Engineer",
		Description:    "Own CI/CD and cloud infrastructure. Skills: Docker, Kubernetes, AWS, Terraform, Linux.",
		Stipend:        "$110,000 - $140,000",
		Type:           "Full-time",
		Location:       "Seattle, WA",
	},
	{
		RecruiterEmail: "jobs@dataflow.com",
		Title:          "Python Backend Developer",
		Description:    "Develop RESTful microservices. Skills: Python, Django, Flask, PostgreSQL, Redis, Docker.",
		Stipend:        "$100,000 - $130,000",
		Type:           "Full-time",
		Location:       "New York, NY",
	},
	{
		RecruiterEmail: "ml-jobs@aiinnovations.com",
		Title:          "Machine Learning Engineer",
		Description:    "Deploy machine learning models for enterprise clients. Skills: Python, TensorFlow, PyTorch, Pandas, NumPy.",
		Stipend:        "$130,000 - $160,000",
		Type:           "Full-time",
		Location:       "Boston, MA",
	},
	{
		RecruiterEmail: "mobile@mobiletech.com",
		Title:          "Mobile App Developer (React Native)",
		Description:    "Build cross-platform apps with React Native for iOS and Android. Skills: JavaScript, TypeScript, Redux.",
		Stipend:        "$95,000 - $125,000",
		Type:           "Full-time",
		Location:       "Los Angeles, CA",
	},
	{
		RecruiterEmail: "internships@startuphub.com",
		Title:          "Software Engineering Intern",
		Description:    "Summer internship for Computer Science students working on web and mobile projects. Skills: Git, any programming language.",
		Stipend:        "$4,000 - $6,000 per month",
		Type:           "Internship",
		Location:       "Remote",
	},
}
