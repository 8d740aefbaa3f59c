package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[Role][]string{
	RoleStudent: {
		"course:enroll",
		"course:view-enrolled",
		"test:view",
		"test:submit",
		"result:view-own",
		"stats:view-own",
		"profile:update",
	},
	RoleTeacher: {
		"course:create",
		"course:view-own",
		"lesson:create",
		"test:create",
		"test:view",
		"result:view-test",
		"stats:view-own",
		"profile:update",
	},
	RoleAdmin: {
		"*", // everything
	},
}
