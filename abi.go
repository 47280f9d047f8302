package staking

// StakingTodoListABI covers the subset of the staking todo list contract used by the client.
const StakingTodoListABI = `[
	{
		"inputs": [],
		"name": "minimumStake",
		"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [{"internalType": "string", "name": "_description", "type": "string"}],
		"name": "createTodo",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	}
]`
