package generator

// contractTemplate describes one of the built-in Solidity sources contracts are generated from. The Source field is
// a text/template body parameterized by a contract name and a baseline constant.
type contractTemplate struct {
	// BaseName describes the name prefix of contracts generated from this template.
	BaseName string

	// Source describes the template body.
	Source string
}

// contractTemplates describes the built-in templates generated contracts are drawn from. Function names are the
// surface the interaction driver's heuristics operate on, so each template exposes a mix of additive, neutral and
// risky operations.
var contractTemplates = []contractTemplate{
	{
		BaseName: "Counter",
		Source: `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.0;

contract {{.Name}} {
    uint256 private total;

    constructor() {
        total = {{.Baseline}};
    }

    function setValue(uint256 value) public {
        total = value;
    }

    function incrementTotal() public {
        total += 1;
    }

    function addAmount(uint256 amount) public {
        total += amount;
    }

    function subtractAmount(uint256 amount) public {
        total -= amount;
    }

    function decrementTotal(uint256 amount) public {
        total -= amount;
    }

    function multiplyFactor(uint256 factor) public {
        total *= factor;
    }

    function divideShare(uint256 divisor) public {
        total /= divisor;
    }

    function powerBoost(uint256 exponent) public {
        total = total ** exponent;
    }

    function getTotal() public view returns (uint256) {
        return total;
    }
}
`,
	},
	{
		BaseName: "Vault",
		Source: `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.0;

contract {{.Name}} {
    mapping(string => uint256) private values;
    string[] private keys;

    function setKey(string memory key, uint256 value) public {
        if (values[key] == 0) {
            keys.push(key);
        }
        values[key] = value;
    }

    function storeKey(string memory key) public {
        keys.push(key);
        values[key] = {{.Baseline}};
    }

    function addEntry(string memory key, uint256 value) public {
        keys.push(key);
        values[key] = value;
    }

    function popEntry() public {
        string memory key = keys[keys.length - 1];
        keys.pop();
        delete values[key];
    }

    function getValue(string memory key) public view returns (uint256) {
        return values[key];
    }

    function countKeys() public view returns (uint256) {
        return keys.length;
    }
}
`,
	},
	{
		BaseName: "Registry",
		Source: `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.0;

contract {{.Name}} {
    address public owner;
    uint256 private counter;
    address[] private members;

    constructor() {
        owner = msg.sender;
        counter = {{.Baseline}};
    }

    function initMember(address member) public {
        members.push(member);
    }

    function addMember(address member) public {
        members.push(member);
        counter += 1;
    }

    function incrementCounter(uint256 step) public {
        counter += step;
    }

    function decrementCounter(uint256 step) public {
        counter -= step;
    }

    function popMember() public {
        members.pop();
    }

    function transferOwnership(address next) public {
        owner = next;
    }

    function memberCount() public view returns (uint256) {
        return members.length;
    }
}
`,
	},
}
