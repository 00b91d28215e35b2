package seeder

// Defaults returns the seeders run by `migrate -seed`, in dependency order.
func Defaults(admin Account, samplePassword string) []Seeder {
	return []Seeder{
		AdminSeeder{Account: admin},
		RecruitersSeeder{Password: samplePassword},
		StudentsSeeder{Password: samplePassword},
		JobsSeeder{},
	}
}
